package refund

import (
	"context"
	"fmt"
	"strconv"

	"payments/internal/entities"
	"payments/pkg/logger"
)

// статусы, из которых заказ можно вернуть
var refundableStatuses = map[entities.OrderStatusType]struct{}{
	entities.OrderConfirmed:  {},
	entities.OrderProcessing: {},
	entities.OrderShipped:    {},
	entities.OrderDelivered:  {},
}

type Service struct {
	orders    OrderRepository
	payments  PaymentRepository
	gateway   RefundGateway
	inventory Inventory
	auditor   Auditor
	txManager TxManager
	log       logger.Logger
}

func New(
	orders OrderRepository,
	payments PaymentRepository,
	gateway RefundGateway,
	inventory Inventory,
	auditor Auditor,
	txManager TxManager,
	log logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		payments:  payments,
		gateway:   gateway,
		inventory: inventory,
		auditor:   auditor,
		txManager: txManager,
		log:       log,
	}
}

// Refund проводит возврат. Сначала деньги в шлюзе, потом локальные статусы:
// упавший после возврата денег commit оставит заказ незакрытым, и это
// безопаснее чем закрытый заказ без возврата денег. Зависшие случаи видны
// по записи аудита.
//
// amount == 0 означает полный возврат. Частичный возврат не меняет статусы,
// только фиксируется в таймлайне и аудите.
func (s *Service) Refund(ctx context.Context, orderID, amount int64, reason string) (*entities.Order, error) {
	orderEntity, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, ok := refundableStatuses[orderEntity.Status]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotRefundable, orderEntity.Status)
	}

	payment, err := s.payments.GetActiveByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment.Status != entities.PaymentSuccessful {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotRefundable, payment.Status)
	}

	externalRef := gatewayReference(payment)
	if externalRef == "" {
		return nil, ErrNoGatewayReference
	}

	if amount == 0 {
		amount = orderEntity.TotalAmount
	}
	if amount < 0 || amount > orderEntity.TotalAmount {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidAmount, amount, orderEntity.TotalAmount)
	}
	full := amount == orderEntity.TotalAmount

	gatewayRefund, err := s.gateway.RefundTransaction(ctx, externalRef, amount, reason)
	if err != nil {
		return nil, err
	}

	updated := orderEntity
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if !full {
			note := fmt.Sprintf("partial refund %d: %s", amount, reason)
			return s.orders.AppendEvent(ctx, orderID, orderEntity.Status, note)
		}

		refunded := entities.PaymentRefunded
		if _, err := s.payments.Update(ctx, entities.PaymentModify{ID: &payment.ID, Status: &refunded}); err != nil {
			return err
		}
		if _, err := s.orders.Update(ctx, entities.OrderModify{ID: &orderID, PaymentStatus: &refunded}); err != nil {
			return err
		}

		updated, err = s.orders.UpdateStatusGuarded(ctx, orderID, orderEntity.Status, entities.OrderRefunded)
		if err != nil {
			return err
		}
		updated.Items = orderEntity.Items

		return s.orders.AppendEvent(ctx, orderID, entities.OrderRefunded, "refund: "+reason)
	})
	if err != nil {
		// деньги в шлюзе уже возвращены, след остается в аудите
		s.recordAudit(ctx, orderEntity, gatewayRefund, amount, reason, "refund_commit_failed")
		return nil, fmt.Errorf("apply refund locally: %w", err)
	}

	if full {
		s.restoreStock(ctx, orderEntity)
	}
	s.recordAudit(ctx, orderEntity, gatewayRefund, amount, reason, "refund")

	return updated, nil
}

func (s *Service) recordAudit(ctx context.Context, orderEntity *entities.Order, gatewayRefund *entities.GatewayRefund, amount int64, reason, action string) {
	record := entities.AuditRecord{
		Actor:      "refund-service",
		Action:     action,
		EntityType: "order",
		EntityID:   orderEntity.ID,
		Metadata: map[string]string{
			"order_number":  orderEntity.Number,
			"amount":        strconv.FormatInt(amount, 10),
			"reason":        reason,
			"refund_id":     gatewayRefund.RefundID,
			"refund_status": gatewayRefund.Status,
		},
	}

	if err := s.auditor.Record(ctx, record); err != nil {
		s.log.With(
			logger.NewField("order", orderEntity.Number),
			logger.NewField("error", err),
		).Error("audit record failed")
	}
}

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

func gatewayReference(payment *entities.Payment) string {
	if payment.GatewayRef != nil && *payment.GatewayRef != "" {
		return *payment.GatewayRef
	}
	if payment.GatewayTxnID != nil && *payment.GatewayTxnID != "" {
		return *payment.GatewayTxnID
	}
	return ""
}
