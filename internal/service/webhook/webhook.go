package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"payments/internal/entities"
	"payments/pkg/logger"
)

const eventChargeCompleted = "charge.completed"

// Result - итог обработки уведомления. Duplicate и Ignored не ошибки:
// шлюз в обоих случаях должен получить 200 и перестать доставлять event.
type Result string

const (
	ResultAccepted  Result = "accepted"
	ResultIgnored   Result = "ignored"
	ResultDuplicate Result = "duplicate"
)

type Service struct {
	orders    OrderRepository
	events    EventRepository
	ledger    OrderLedger
	txManager TxManager
	log       logger.Logger
	secret    string
}

func New(
	orders OrderRepository,
	events EventRepository,
	ledger OrderLedger,
	txManager TxManager,
	log logger.Logger,
	secret string,
) *Service {
	return &Service{
		orders:    orders,
		events:    events,
		ledger:    ledger,
		txManager: txManager,
		log:       log,
		secret:    secret,
	}
}

type chargePayload struct {
	Event string `json:"event"`
	Data  struct {
		ID       int64  `json:"id"`
		TxRef    string `json:"tx_ref"`
		FlwRef   string `json:"flw_ref"`
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// Process проверяет подпись и применяет исход платежа из уведомления.
// Запись event id и применение исхода идут в одной транзакции, поэтому
// повторная доставка либо дает Duplicate, либо применяется заново целиком.
func (s *Service) Process(ctx context.Context, payload []byte, signature string) (Result, error) {
	if !s.signatureValid(signature) {
		return "", ErrInvalidSignature
	}

	var event chargePayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if event.Event != eventChargeCompleted {
		s.log.With(
			logger.NewField("event", event.Event),
		).Debug("webhook event type ignored")
		return ResultIgnored, nil
	}

	outcome, known := outcomeFromStatus(event.Data.Status)
	if !known {
		return ResultIgnored, nil
	}

	if event.Data.ID == 0 || event.Data.TxRef == "" {
		return "", fmt.Errorf("%w: missing event id or tx_ref", ErrMalformedPayload)
	}

	orderEntity, err := s.orders.GetByNumber(ctx, event.Data.TxRef)
	if err != nil {
		return "", err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.events.Record(ctx, entities.WebhookEvent{
			EventID:   strconv.FormatInt(event.Data.ID, 10),
			EventType: event.Event,
		}); err != nil {
			return err
		}
		return s.ledger.MarkPaymentResult(ctx, orderEntity.ID, outcome, event.Data.Amount, event.Data.FlwRef)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEvent) {
			return ResultDuplicate, nil
		}
		return "", err
	}

	return ResultAccepted, nil
}

// signatureValid сравнивает подпись за постоянное время.
// Пустой настроенный секрет отклоняет все: лучше терять уведомления,
// чем принимать неподписанные.
func (s *Service) signatureValid(signature string) bool {
	if s.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(s.secret)) == 1
}

func outcomeFromStatus(status string) (entities.PaymentOutcomeType, bool) {
	switch status {
	case entities.OutcomeSuccessful.String():
		return entities.OutcomeSuccessful, true
	case entities.OutcomeFailed.String():
		return entities.OutcomeFailed, true
	default:
		return "", false
	}
}
