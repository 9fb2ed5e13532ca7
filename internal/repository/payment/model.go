package payment

import "time"

type PaymentDB struct {
	ID           int64
	OrderID      int64
	Method       string
	Status       string
	GatewayTxnID *string
	GatewayRef   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
