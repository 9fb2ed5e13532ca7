package refund

import "errors"

var (
	ErrOrderNotRefundable   = errors.New("order status does not allow refund")
	ErrPaymentNotRefundable = errors.New("payment is not in a refundable state")
	ErrNoGatewayReference   = errors.New("payment has no gateway reference")
	ErrInvalidAmount        = errors.New("refund amount out of range")
)
