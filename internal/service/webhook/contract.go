//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=webhook_test
package webhook

import (
	"context"

	"payments/internal/entities"
)

type OrderRepository interface {
	GetByNumber(ctx context.Context, number string) (*entities.Order, error)
}

type EventRepository interface {
	Record(ctx context.Context, event entities.WebhookEvent) error
}

type OrderLedger interface {
	MarkPaymentResult(ctx context.Context, orderID int64, outcome entities.PaymentOutcomeType, amount int64, gatewayTxnID string) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
