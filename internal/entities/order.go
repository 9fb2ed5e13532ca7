package entities

import "time"

type Order struct {
	ID               int64
	Number           string
	Status           OrderStatusType
	PaymentStatus    PaymentStatusType
	TotalAmount      int64 // минорные единицы валюты
	Currency         string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ShippingAddress  string
	DiscreetShipping bool
	TrackingNumber   *string
	Items            []OrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice int64 // снапшот цены на момент создания заказа
}

type OrderStatusType string

const (
	OrderPending    OrderStatusType = "PENDING"
	OrderConfirmed  OrderStatusType = "CONFIRMED"
	OrderProcessing OrderStatusType = "PROCESSING"
	OrderShipped    OrderStatusType = "SHIPPED"
	OrderDelivered  OrderStatusType = "DELIVERED"
	OrderCancelled  OrderStatusType = "CANCELLED"
	OrderRefunded   OrderStatusType = "REFUNDED"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	default:
		return false
	}
}

type OrderModify struct {
	ID             *int64
	Status         *OrderStatusType
	PaymentStatus  *PaymentStatusType
	TrackingNumber *string
}
