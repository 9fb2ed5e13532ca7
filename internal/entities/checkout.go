package entities

type CartLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice int64
}

type CartSnapshot struct {
	Lines []CartLine
}

// Total пересчитывает сумму корзины из строк. Сумма фиксируется при создании
// заказа и после этого никогда не пересчитывается.
func (c CartSnapshot) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Quantity * line.UnitPrice
	}
	return total
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type ShippingInfo struct {
	Address  string
	Discreet bool
}

type MethodDetails struct {
	Network     MobileMoneyNetwork
	PhoneNumber string
}

// CheckoutRequest - оформление заказа как его прислала витрина.
// DeclaredTotal - сумма, которую видел покупатель, сверяется с пересчетом корзины.
type CheckoutRequest struct {
	Cart          CartSnapshot
	DeclaredTotal int64
	Currency      string
	Customer      Customer
	Shipping      ShippingInfo
	Method        PaymentMethodType
	Details       MethodDetails
}

// ChargeRequest - запрос на инициацию платежа в шлюзе.
type ChargeRequest struct {
	OrderNumber string
	Amount      int64
	Currency    string
	Customer    Customer
	Method      PaymentMethodType
	Details     MethodDetails
	RedirectURL string
}

// PaymentInitiation - нормализованный результат создания платежа в шлюзе.
type PaymentInitiation struct {
	Status       string
	ExternalRef  string
	CheckoutLink string
}

// GatewayVerification - фактическое состояние транзакции по данным шлюза.
type GatewayVerification struct {
	TransactionID string
	OrderNumber   string
	Status        string
	Amount        int64
	Currency      string
}

// GatewayRefund - подтверждение возврата от шлюза.
type GatewayRefund struct {
	RefundID string
	Status   string
	Amount   int64
}

// AuditRecord сериализуется как есть в topic аудита.
type AuditRecord struct {
	Actor      string            `json:"actor"`
	Action     string            `json:"action"`
	EntityType string            `json:"entity_type"`
	EntityID   int64             `json:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type CheckoutResult struct {
	Order        *Order
	CheckoutLink string
	// PaymentAmbiguous выставляется когда локальная запись создана,
	// а вызов шлюза не дал однозначного результата.
	PaymentAmbiguous bool
}
