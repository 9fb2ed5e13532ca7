package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"payments/internal/entities"
)

// Recorder пишет записи аудита в отдельный topic. Используется для операций,
// которые требуют следа вне БД заказа: возвраты, расхождения сверки.
type Recorder struct {
	producer sarama.SyncProducer
	topic    string
}

func New(producer sarama.SyncProducer, topic string) *Recorder {
	return &Recorder{
		producer: producer,
		topic:    topic,
	}
}

func (r *Recorder) Record(ctx context.Context, record entities.AuditRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	key := fmt.Sprintf("%s:%d", record.EntityType, record.EntityID)

	_, _, err = r.producer.SendMessage(&sarama.ProducerMessage{
		Topic: r.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(raw),
	})
	if err != nil {
		return fmt.Errorf("publish audit record %s: %w", key, err)
	}
	return nil
}
