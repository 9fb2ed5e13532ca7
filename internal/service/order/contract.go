//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"payments/internal/entities"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	GetByNumber(ctx context.Context, number string) (*entities.Order, error)
	UpdateStatusGuarded(ctx context.Context, id int64, from, to entities.OrderStatusType) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)

	AppendEvent(ctx context.Context, orderID int64, status entities.OrderStatusType, note string) error
	ListEvents(ctx context.Context, orderID int64) ([]entities.OrderEvent, error)
	FindStalePending(ctx context.Context, cutoff time.Time, limit int64) ([]entities.Order, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) (*entities.Payment, error)
	GetActiveByOrderID(ctx context.Context, orderID int64) (*entities.Payment, error)
	Update(ctx context.Context, paymentModify entities.PaymentModify) (*entities.Payment, error)
}

type PaymentGateway interface {
	CreatePayment(ctx context.Context, req entities.ChargeRequest) (*entities.PaymentInitiation, error)
	VerifyTransaction(ctx context.Context, externalRef string) (*entities.GatewayVerification, error)
}

type Inventory interface {
	Increment(ctx context.Context, productID, quantity int64) error
}

type Notifier interface {
	NotifyShipped(ctx context.Context, order *entities.Order) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
