//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=refund_test
package refund

import (
	"context"

	"payments/internal/entities"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	UpdateStatusGuarded(ctx context.Context, id int64, from, to entities.OrderStatusType) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	AppendEvent(ctx context.Context, orderID int64, status entities.OrderStatusType, note string) error
}

type PaymentRepository interface {
	GetActiveByOrderID(ctx context.Context, orderID int64) (*entities.Payment, error)
	Update(ctx context.Context, paymentModify entities.PaymentModify) (*entities.Payment, error)
}

type RefundGateway interface {
	RefundTransaction(ctx context.Context, externalRef string, amount int64, reason string) (*entities.GatewayRefund, error)
}

type Inventory interface {
	Increment(ctx context.Context, productID, quantity int64) error
}

type Auditor interface {
	Record(ctx context.Context, record entities.AuditRecord) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
