package paygate

import "errors"

var (
	// ErrPaymentInitiation - создание платежа не удалось. Вызывающий НЕ может
	// считать что шлюз не получил запрос: таймаут это неоднозначный исход,
	// он разрешается позже через webhook или переверификацию.
	ErrPaymentInitiation = errors.New("payment initiation failed")

	ErrRefund             = errors.New("gateway refund failed")
	ErrVerification       = errors.New("transaction verification failed")
	ErrUnsupportedNetwork = errors.New("unsupported mobile money network")
)
