package order

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"payments/internal/entities"
	"payments/pkg/logger"
)

const (
	// разница в 1 минорную единицу допустима из-за округления на витрине
	amountTolerance = 1

	numberGenAttempts = 3
	notifyTimeout     = 5 * time.Second
)

// допустимые переходы статусов. CANCELLED и REFUNDED терминальные,
// REFUNDED достижим только через процесс возврата.
var allowedTransitions = map[entities.OrderStatusType][]entities.OrderStatusType{
	entities.OrderPending:    {entities.OrderConfirmed, entities.OrderCancelled},
	entities.OrderConfirmed:  {entities.OrderProcessing, entities.OrderCancelled},
	entities.OrderProcessing: {entities.OrderShipped, entities.OrderCancelled},
	entities.OrderShipped:    {entities.OrderDelivered},
}

type Service struct {
	orders      OrderRepository
	payments    PaymentRepository
	gateway     PaymentGateway
	inventory   Inventory
	notifier    Notifier
	txManager   TxManager
	log         logger.Logger
	redirectURL string
}

func New(
	orders OrderRepository,
	payments PaymentRepository,
	gateway PaymentGateway,
	inventory Inventory,
	notifier Notifier,
	txManager TxManager,
	log logger.Logger,
	redirectURL string,
) *Service {
	return &Service{
		orders:      orders,
		payments:    payments,
		gateway:     gateway,
		inventory:   inventory,
		notifier:    notifier,
		txManager:   txManager,
		log:         log,
		redirectURL: redirectURL,
	}
}

// CreateOrder фиксирует заказ с платежом PENDING и инициирует оплату в шлюзе.
// Заказ создается до вызова шлюза: если шлюз не дал однозначного ответа,
// запись остается PENDING и исход разрешается через webhook или сверку.
func (s *Service) CreateOrder(ctx context.Context, req entities.CheckoutRequest) (*entities.CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	total := req.Cart.Total()
	if diff := total - req.DeclaredTotal; diff > amountTolerance || diff < -amountTolerance {
		return nil, fmt.Errorf("%w: declared %d, computed %d", ErrAmountMismatch, req.DeclaredTotal, total)
	}

	var (
		created *entities.Order
		payment *entities.Payment
		err     error
	)
	for attempt := 0; attempt < numberGenAttempts; attempt++ {
		created, payment, err = s.createOrderTx(ctx, req, total)
		if errors.Is(err, ErrOrderNumberTaken) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	initiation, err := s.gateway.CreatePayment(ctx, entities.ChargeRequest{
		OrderNumber: created.Number,
		Amount:      created.TotalAmount,
		Currency:    created.Currency,
		Customer:    req.Customer,
		Method:      req.Method,
		Details:     req.Details,
		RedirectURL: s.redirectURL,
	})
	if err != nil {
		if isAmbiguousGatewayError(err) {
			s.log.With(
				logger.NewField("order", created.Number),
				logger.NewField("error", err),
			).Warn("payment initiation ambiguous, order left pending")
			return &entities.CheckoutResult{Order: created, PaymentAmbiguous: true}, nil
		}

		// запрос мог дойти до шлюза даже при отказе после ретраев,
		// поэтому локально ничего не откатываем: заказ остается PENDING
		// и исход разрешит webhook или сверка
		s.log.With(
			logger.NewField("order", created.Number),
			logger.NewField("error", err),
		).Warn("payment initiation failed, order left pending")
		return nil, err
	}

	if initiation.ExternalRef != "" {
		if _, updateErr := s.payments.Update(ctx, entities.PaymentModify{
			ID:         &payment.ID,
			GatewayRef: &initiation.ExternalRef,
		}); updateErr != nil {
			// не фатально, сверка найдет транзакцию по номеру заказа
			s.log.With(
				logger.NewField("order", created.Number),
				logger.NewField("error", updateErr),
			).Warn("store gateway ref failed")
		}
	}

	return &entities.CheckoutResult{Order: created, CheckoutLink: initiation.CheckoutLink}, nil
}

func (s *Service) GetOrderByNumber(ctx context.Context, number string) (*entities.Order, []entities.OrderEvent, error) {
	orderEntity, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.orders.ListEvents(ctx, orderEntity.ID)
	if err != nil {
		return nil, nil, err
	}
	return orderEntity, events, nil
}

// UpdateStatus переводит заказ в новый статус с проверкой допустимости перехода.
// Отмена возвращает сток, отгрузка асинхронно шлет уведомление покупателю.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, newStatus entities.OrderStatusType, note string, trackingNumber *string) (*entities.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	if newStatus == entities.OrderRefunded {
		return nil, fmt.Errorf("%w: refunds go through the refund flow", ErrInvalidTransition)
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		if !transitionAllowed(current.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
		}

		updated, err = s.orders.UpdateStatusGuarded(ctx, orderID, current.Status, newStatus)
		if err != nil {
			return err
		}
		updated.Items = current.Items

		if newStatus == entities.OrderShipped && trackingNumber != nil {
			withTracking, err := s.orders.Update(ctx, entities.OrderModify{
				ID:             &orderID,
				TrackingNumber: trackingNumber,
			})
			if err != nil {
				return err
			}
			withTracking.Items = current.Items
			updated = withTracking
		}

		if note == "" {
			note = "status changed"
		}
		return s.orders.AppendEvent(ctx, orderID, newStatus, note)
	})
	if err != nil {
		return nil, err
	}

	switch newStatus {
	case entities.OrderCancelled:
		s.restoreStock(ctx, updated)
	case entities.OrderShipped:
		notified := *updated
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
			defer cancel()

			if err := s.notifier.NotifyShipped(notifyCtx, &notified); err != nil {
				s.log.With(
					logger.NewField("order", notified.Number),
					logger.NewField("error", err),
				).Error("shipped notification failed")
			}
		}()
	}

	return updated, nil
}

// MarkPaymentResult применяет исход платежа от шлюза. Идемпотентен:
// для платежа в терминальном состоянии повторный исход это no-op.
func (s *Service) MarkPaymentResult(ctx context.Context, orderID int64, outcome entities.PaymentOutcomeType, amount int64, gatewayTxnID string) error {
	var restore *entities.Order

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		restore = nil

		orderEntity, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		payment, err := s.payments.GetActiveByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if payment.IsTerminal() {
			return nil
		}

		// проверка суммы до ветвления по исходу: уведомление с чужой
		// суммой не должно ни подтверждать, ни отменять заказ
		if diff := amount - orderEntity.TotalAmount; diff > amountTolerance || diff < -amountTolerance {
			return fmt.Errorf("%w: gateway amount %d, order total %d", ErrAmountMismatch, amount, orderEntity.TotalAmount)
		}

		switch outcome {
		case entities.OutcomeSuccessful:
			return s.applySuccessfulPayment(ctx, orderEntity, payment, gatewayTxnID)
		case entities.OutcomeFailed:
			cancelled, err := s.applyFailedPayment(ctx, orderEntity, payment, gatewayTxnID)
			if err != nil {
				return err
			}
			if cancelled {
				restore = orderEntity
			}
			return nil
		default:
			return fmt.Errorf("unknown payment outcome %q", outcome)
		}
	})
	if err != nil {
		return err
	}

	if restore != nil {
		s.restoreStock(ctx, restore)
	}
	return nil
}

// ReconcilePending опрашивает шлюз по зависшим PENDING заказам и применяет
// фактический исход. Возвращает число обработанных заказов.
func (s *Service) ReconcilePending(ctx context.Context, olderThan time.Duration, limit int64) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	stale, err := s.orders.FindStalePending(ctx, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("find stale pending: %w", err)
	}

	var processed int64
	for i := range stale {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		if err := s.reconcileOrder(ctx, &stale[i]); err != nil {
			s.log.With(
				logger.NewField("order", stale[i].Number),
				logger.NewField("error", err),
			).Warn("reconciliation skipped order")
			continue
		}
		processed++
	}

	return processed, nil
}

func (s *Service) createOrderTx(ctx context.Context, req entities.CheckoutRequest, total int64) (*entities.Order, *entities.Payment, error) {
	number, err := generateOrderNumber(time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	items := make([]entities.OrderItem, 0, len(req.Cart.Lines))
	for _, line := range req.Cart.Lines {
		items = append(items, entities.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	var (
		created *entities.Order
		payment *entities.Payment
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err = s.orders.Create(ctx, &entities.Order{
			Number:           number,
			Status:           entities.OrderPending,
			PaymentStatus:    entities.PaymentPending,
			TotalAmount:      total,
			Currency:         req.Currency,
			CustomerName:     req.Customer.Name,
			CustomerEmail:    req.Customer.Email,
			CustomerPhone:    req.Customer.Phone,
			ShippingAddress:  req.Shipping.Address,
			DiscreetShipping: req.Shipping.Discreet,
			Items:            items,
		})
		if err != nil {
			return err
		}

		payment, err = s.payments.Create(ctx, &entities.Payment{
			OrderID: created.ID,
			Method:  req.Method,
			Status:  entities.PaymentPending,
		})
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		return s.orders.AppendEvent(ctx, created.ID, entities.OrderPending, "order created")
	})
	if err != nil {
		return nil, nil, err
	}

	return created, payment, nil
}

func (s *Service) applySuccessfulPayment(ctx context.Context, orderEntity *entities.Order, payment *entities.Payment, gatewayTxnID string) error {
	successful := entities.PaymentSuccessful
	modify := entities.PaymentModify{ID: &payment.ID, Status: &successful}
	if gatewayTxnID != "" {
		modify.GatewayTxnID = &gatewayTxnID
	}
	if _, err := s.payments.Update(ctx, modify); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	if _, err := s.orders.Update(ctx, entities.OrderModify{
		ID:            &orderEntity.ID,
		PaymentStatus: &successful,
	}); err != nil {
		return fmt.Errorf("update order payment status: %w", err)
	}

	if _, err := s.orders.UpdateStatusGuarded(ctx, orderEntity.ID, entities.OrderPending, entities.OrderConfirmed); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			// заказ уже ушел из PENDING, оплату фиксируем без смены статуса
			s.log.With(
				logger.NewField("order", orderEntity.Number),
			).Warn("payment confirmed for order no longer pending")
			return nil
		}
		return err
	}

	return s.orders.AppendEvent(ctx, orderEntity.ID, entities.OrderConfirmed, "payment successful")
}

func (s *Service) applyFailedPayment(ctx context.Context, orderEntity *entities.Order, payment *entities.Payment, gatewayTxnID string) (cancelled bool, err error) {
	failed := entities.PaymentFailed
	modify := entities.PaymentModify{ID: &payment.ID, Status: &failed}
	if gatewayTxnID != "" {
		modify.GatewayTxnID = &gatewayTxnID
	}
	if _, err := s.payments.Update(ctx, modify); err != nil {
		return false, fmt.Errorf("update payment: %w", err)
	}

	if _, err := s.orders.Update(ctx, entities.OrderModify{
		ID:            &orderEntity.ID,
		PaymentStatus: &failed,
	}); err != nil {
		return false, fmt.Errorf("update order payment status: %w", err)
	}

	if _, err := s.orders.UpdateStatusGuarded(ctx, orderEntity.ID, entities.OrderPending, entities.OrderCancelled); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			return false, nil
		}
		return false, err
	}

	if err := s.orders.AppendEvent(ctx, orderEntity.ID, entities.OrderCancelled, "payment failed"); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) reconcileOrder(ctx context.Context, orderEntity *entities.Order) error {
	payment, err := s.payments.GetActiveByOrderID(ctx, orderEntity.ID)
	if err != nil {
		return err
	}
	if payment.IsTerminal() {
		return nil
	}

	// без сохраненного ref шлюз ищет транзакцию по номеру заказа
	ref := orderEntity.Number
	if payment.GatewayRef != nil {
		ref = *payment.GatewayRef
	}

	verification, err := s.gateway.VerifyTransaction(ctx, ref)
	if err != nil {
		return err
	}

	switch verification.Status {
	case entities.OutcomeSuccessful.String():
		return s.MarkPaymentResult(ctx, orderEntity.ID, entities.OutcomeSuccessful, verification.Amount, verification.TransactionID)
	case entities.OutcomeFailed.String():
		return s.MarkPaymentResult(ctx, orderEntity.ID, entities.OutcomeFailed, verification.Amount, verification.TransactionID)
	default:
		// шлюз еще не разрешил транзакцию
		return nil
	}
}

// restoreStock возвращает сток по позициям заказа. Вызывается после commit
// и не повторяется: недовозврат стока чинится вручную, двойной возврат хуже.
func (s *Service) restoreStock(ctx context.Context, orderEntity *entities.Order) {
	for _, item := range orderEntity.Items {
		if err := s.inventory.Increment(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.With(
				logger.NewField("order", orderEntity.Number),
				logger.NewField("product_id", item.ProductID),
				logger.NewField("error", err),
			).Error("stock restore failed")
		}
	}
}

func transitionAllowed(from, to entities.OrderStatusType) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// isAmbiguousGatewayError выделяет таймауты: ответ шлюза не получен вовсе,
// и результат оформляется как ожидающий подтверждения. Остальные отказы
// возвращаются вызывающему как ошибка; заказ в обоих случаях остается PENDING.
func isAmbiguousGatewayError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func generateOrderNumber(now time.Time) (string, error) {
	var raw [2]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("order number entropy: %w", err)
	}
	return fmt.Sprintf("ORD-%s-%04X", now.Format("20060102150405"), binary.BigEndian.Uint16(raw[:])), nil
}
