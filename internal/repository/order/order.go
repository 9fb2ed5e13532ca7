package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"payments/internal/entities"
	"payments/internal/repository"
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

const orderColumns = `id, number, status, payment_status, total_amount, currency,
		customer_name, customer_email, customer_phone, shipping_address,
		discreet_shipping, tracking_number, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, orderEntity *entities.Order) (*entities.Order, error) {
	query := `
		INSERT INTO orders (number, status, payment_status, total_amount, currency,
			customer_name, customer_email, customer_phone, shipping_address, discreet_shipping)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + orderColumns

	var orderModel OrderDB
	err := r.querier.QueryRow(
		ctx,
		query,
		orderEntity.Number,
		orderEntity.Status.String(),
		orderEntity.PaymentStatus.String(),
		orderEntity.TotalAmount,
		orderEntity.Currency,
		orderEntity.CustomerName,
		orderEntity.CustomerEmail,
		orderEntity.CustomerPhone,
		orderEntity.ShippingAddress,
		orderEntity.DiscreetShipping,
	).Scan(orderScanTargets(&orderModel)...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrOrderNumberTaken
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	created := ToDomain(&orderModel)

	for _, item := range orderEntity.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, order_id, product_id, quantity, unit_price`

		var itemModel OrderItemDB
		err := r.querier.QueryRow(ctx, itemQuery, created.ID, item.ProductID, item.Quantity, item.UnitPrice).
			Scan(&itemModel.ID, &itemModel.OrderID, &itemModel.ProductID, &itemModel.Quantity, &itemModel.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository create item error: %w", err)
		}
		created.Items = append(created.Items, ToItemDomain(&itemModel))
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	var orderModel OrderDB
	err := r.querier.QueryRow(ctx, query, id).Scan(orderScanTargets(&orderModel)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return r.withItems(ctx, ToDomain(&orderModel))
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE number = $1`

	var orderModel OrderDB
	err := r.querier.QueryRow(ctx, query, number).Scan(orderScanTargets(&orderModel)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbynumber error: %w", err)
	}

	return r.withItems(ctx, ToDomain(&orderModel))
}

// UpdateStatusGuarded переводит заказ из from в to одним guarded UPDATE.
// Конкурирующий переход увидит 0 строк и получит ErrStatusConflict,
// никакой read-modify-write гонки здесь нет.
func (r *Repository) UpdateStatusGuarded(ctx context.Context, id int64, from, to entities.OrderStatusType) (*entities.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + orderColumns

	var orderModel OrderDB
	err := r.querier.QueryRow(ctx, query, to.String(), id, from.String()).Scan(orderScanTargets(&orderModel)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// различаем "нет заказа" и "статус уже другой"
			if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, order.ErrOrderNotFound) {
				return nil, order.ErrOrderNotFound
			}
			return nil, order.ErrStatusConflict
		}
		return nil, fmt.Errorf("unexpected order repository update status error: %w", err)
	}

	return ToDomain(&orderModel), nil
}

func (r *Repository) Update(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	builder := qb.
		Update("orders")

	// опциональные поля
	if orderModifyEntity.Status != nil {
		builder = builder.Set("status", orderModifyEntity.Status.String())
	}
	if orderModifyEntity.PaymentStatus != nil {
		builder = builder.Set("payment_status", orderModifyEntity.PaymentStatus.String())
	}
	if orderModifyEntity.TrackingNumber != nil {
		builder = builder.Set("tracking_number", orderModifyEntity.TrackingNumber)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": orderModifyEntity.ID}).
		Suffix("RETURNING " + orderColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var orderModel OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(orderScanTargets(&orderModel)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(&orderModel), nil
}

func (r *Repository) AppendEvent(ctx context.Context, orderID int64, status entities.OrderStatusType, note string) error {
	query := `
		INSERT INTO order_events (order_id, status, note)
		VALUES ($1, $2, $3)`

	_, err := r.querier.Exec(ctx, query, orderID, status.String(), note)
	if err != nil {
		return fmt.Errorf("unexpected order repository append event error: %w", err)
	}
	return nil
}

func (r *Repository) ListEvents(ctx context.Context, orderID int64) ([]entities.OrderEvent, error) {
	query := `
		SELECT id, order_id, status, note, created_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list events error: %w", err)
	}
	defer rows.Close()

	events := make([]entities.OrderEvent, 0, 8)
	for rows.Next() {
		var eventModel OrderEventDB
		err := rows.Scan(
			&eventModel.ID,
			&eventModel.OrderID,
			&eventModel.Status,
			&eventModel.Note,
			&eventModel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list events error: %w", err)
		}
		events = append(events, ToEventDomain(&eventModel))
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list events error: %w", err)
	}

	return events, nil
}

// FindStalePending возвращает заказы с неразрешенной оплатой старше cutoff,
// кандидаты на сверку со шлюзом.
func (r *Repository) FindStalePending(ctx context.Context, cutoff time.Time, limit int64) ([]entities.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1 AND payment_status = $2 AND created_at < $3
		ORDER BY created_at
		LIMIT $4`

	rows, err := r.querier.Query(
		ctx,
		query,
		entities.OrderPending.String(),
		entities.PaymentPending.String(),
		cutoff,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository find stale pending error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		var orderModel OrderDB
		if err := rows.Scan(orderScanTargets(&orderModel)...); err != nil {
			return nil, fmt.Errorf("unexpected order repository find stale pending error: %w", err)
		}
		orderModels = append(orderModels, orderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository find stale pending error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

func (r *Repository) withItems(ctx context.Context, orderEntity *entities.Order) (*entities.Order, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, orderEntity.ID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemModel OrderItemDB
		err := rows.Scan(&itemModel.ID, &itemModel.OrderID, &itemModel.ProductID, &itemModel.Quantity, &itemModel.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
		}
		orderEntity.Items = append(orderEntity.Items, ToItemDomain(&itemModel))
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository load items error: %w", err)
	}

	return orderEntity, nil
}

func orderScanTargets(o *OrderDB) []interface{} {
	return []interface{}{
		&o.ID,
		&o.Number,
		&o.Status,
		&o.PaymentStatus,
		&o.TotalAmount,
		&o.Currency,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.DiscreetShipping,
		&o.TrackingNumber,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
