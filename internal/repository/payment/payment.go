package payment

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"payments/internal/entities"
	"payments/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

const paymentColumns = `id, order_id, method, status, gateway_txn_id, gateway_ref, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, paymentEntity *entities.Payment) (*entities.Payment, error) {
	query := `
		INSERT INTO payments (order_id, method, status)
		VALUES ($1, $2, $3)
		RETURNING ` + paymentColumns

	var paymentModel PaymentDB
	err := r.querier.QueryRow(
		ctx,
		query,
		paymentEntity.OrderID,
		paymentEntity.Method.String(),
		paymentEntity.Status.String(),
	).Scan(paymentScanTargets(&paymentModel)...)
	if err != nil {
		return nil, fmt.Errorf("unexpected payment repository create error: %w", err)
	}

	return ToDomain(&paymentModel), nil
}

// GetActiveByOrderID возвращает последнюю попытку оплаты заказа.
// Повторная оплата создает новую запись, более ранние остаются как история.
func (r *Repository) GetActiveByOrderID(ctx context.Context, orderID int64) (*entities.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE order_id = $1
		ORDER BY id DESC
		LIMIT 1`

	var paymentModel PaymentDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(paymentScanTargets(&paymentModel)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("unexpected payment repository get active error: %w", err)
	}

	return ToDomain(&paymentModel), nil
}

func (r *Repository) Update(ctx context.Context, paymentModifyEntity entities.PaymentModify) (*entities.Payment, error) {
	builder := qb.
		Update("payments")

	// опциональные поля
	if paymentModifyEntity.Status != nil {
		builder = builder.Set("status", paymentModifyEntity.Status.String())
	}
	if paymentModifyEntity.GatewayTxnID != nil {
		builder = builder.Set("gateway_txn_id", paymentModifyEntity.GatewayTxnID)
	}
	if paymentModifyEntity.GatewayRef != nil {
		builder = builder.Set("gateway_ref", paymentModifyEntity.GatewayRef)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": paymentModifyEntity.ID}).
		Suffix("RETURNING " + paymentColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected payment repository update error: %w", err)
	}

	var paymentModel PaymentDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(paymentScanTargets(&paymentModel)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("unexpected payment repository update error: %w", err)
	}

	return ToDomain(&paymentModel), nil
}

func paymentScanTargets(p *PaymentDB) []interface{} {
	return []interface{}{
		&p.ID,
		&p.OrderID,
		&p.Method,
		&p.Status,
		&p.GatewayTxnID,
		&p.GatewayRef,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
