package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"payments/internal/entities"
)

// Notifier публикует события для сервиса уведомлений. Доставка best-effort:
// вызывающий логирует ошибку и не откатывает бизнес-операцию.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
}

func New(producer sarama.SyncProducer, topic string) *Notifier {
	return &Notifier{
		producer: producer,
		topic:    topic,
	}
}

type shippedEvent struct {
	Type           string    `json:"type"`
	OrderNumber    string    `json:"order_number"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  string    `json:"customer_phone"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Discreet       bool      `json:"discreet"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (n *Notifier) NotifyShipped(ctx context.Context, order *entities.Order) error {
	event := shippedEvent{
		Type:          "order.shipped",
		OrderNumber:   order.Number,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Discreet:      order.DiscreetShipping,
		OccurredAt:    time.Now().UTC(),
	}
	if order.TrackingNumber != nil {
		event.TrackingNumber = *order.TrackingNumber
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal shipped event: %w", err)
	}

	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(order.Number),
		Value: sarama.ByteEncoder(raw),
	})
	if err != nil {
		return fmt.Errorf("publish shipped event for order %s: %w", order.Number, err)
	}
	return nil
}
