package order

import "time"

type OrderDB struct {
	ID               int64
	Number           string
	Status           string
	PaymentStatus    string
	TotalAmount      int64
	Currency         string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ShippingAddress  string
	DiscreetShipping bool
	TrackingNumber   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderItemDB struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice int64
}

type OrderEventDB struct {
	ID        int64
	OrderID   int64
	Status    string
	Note      string
	CreatedAt time.Time
}
