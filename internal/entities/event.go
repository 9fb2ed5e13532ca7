package entities

import "time"

// OrderEvent - append-only запись таймлайна заказа. Никогда не изменяется и не удаляется.
type OrderEvent struct {
	ID        int64
	OrderID   int64
	Status    OrderStatusType
	Note      string
	CreatedAt time.Time
}

// WebhookEvent - обработанное внешнее уведомление, хранится для дедупликации
// at-least-once доставки.
type WebhookEvent struct {
	EventID    string
	EventType  string
	ReceivedAt time.Time
}
