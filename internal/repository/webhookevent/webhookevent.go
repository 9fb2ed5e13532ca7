package webhookevent

import (
	"context"
	"fmt"

	"payments/internal/entities"
	"payments/internal/repository"
	"payments/internal/service/webhook"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Record фиксирует внешний event id. Вставка внутри той же транзакции что и
// применение результата платежа, unique violation означает повторную доставку.
func (r *Repository) Record(ctx context.Context, event entities.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (event_id, event_type)
		VALUES ($1, $2)`

	_, err := r.querier.Exec(ctx, query, event.EventID, event.EventType)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return webhook.ErrDuplicateEvent
		}
		return fmt.Errorf("unexpected webhook event repository record error: %w", err)
	}
	return nil
}
