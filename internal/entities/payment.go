package entities

import "time"

type Payment struct {
	ID           int64
	OrderID      int64
	Method       PaymentMethodType
	Status       PaymentStatusType
	GatewayTxnID *string
	GatewayRef   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal сообщает достиг ли платеж конечного состояния.
// Переходы монотонные: из терминального состояния платеж не возвращается,
// повторная попытка оплаты создает новую запись Payment.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case PaymentSuccessful, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

type PaymentMethodType string

const (
	MethodCard        PaymentMethodType = "CARD"
	MethodMobileMoney PaymentMethodType = "MOBILE_MONEY"
)

func (m PaymentMethodType) String() string {
	return string(m)
}

type PaymentStatusType string

const (
	PaymentPending    PaymentStatusType = "PENDING"
	PaymentSuccessful PaymentStatusType = "SUCCESSFUL"
	PaymentFailed     PaymentStatusType = "FAILED"
	PaymentRefunded   PaymentStatusType = "REFUNDED"
)

func (s PaymentStatusType) String() string {
	return string(s)
}

type MobileMoneyNetwork string

const (
	NetworkMTN    MobileMoneyNetwork = "MTN"
	NetworkAirtel MobileMoneyNetwork = "AIRTEL"
	NetworkMpesa  MobileMoneyNetwork = "MPESA"
)

func (n MobileMoneyNetwork) String() string {
	return string(n)
}

type PaymentModify struct {
	ID           *int64
	Status       *PaymentStatusType
	GatewayTxnID *string
	GatewayRef   *string
}

type PaymentOutcomeType string

const (
	OutcomeSuccessful PaymentOutcomeType = "successful"
	OutcomeFailed     PaymentOutcomeType = "failed"
)

func (o PaymentOutcomeType) String() string {
	return string(o)
}
