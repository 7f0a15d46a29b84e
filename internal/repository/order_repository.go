package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = "id, code, customer_id, status, total, created_at, updated_at, finalized_at"

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts the order header and all of its items.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, code, customer_id, status, total, created_at, updated_at, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.Code, order.CustomerID, order.Status,
		order.Total.Value(), order.CreatedAt, order.UpdatedAt, order.FinalizedAt,
	)
	if err != nil {
		if !IsUniqueViolation(err) {
			r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := r.insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("code", order.Code).
		Int("item_count", len(order.Items)).
		Msg("order created")

	return nil
}

// insertItems batch-inserts order items within the transaction.
func (r *orderRepository) insertItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, orderID, item.ProductID, item.Quantity, item.UnitPrice.Value(), item.Note)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", orderID.String()).
				Str("product_id", items[i].ProductID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

// GetByID retrieves an order with its items by system id.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)
	return r.getOne(ctx, query, id)
}

// GetByCode retrieves an order with its items by its short code.
func (r *orderRepository) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE code = $1", orderColumns)
	return r.getOne(ctx, query, code)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := r.loadItems(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByCustomerID lists a customer's orders, newest first.
func (r *orderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", orderColumns)
	return r.list(ctx, query, customerID)
}

// GetByStatus lists orders in the given status, oldest first.
func (r *orderRepository) GetByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE status = $1 ORDER BY created_at", orderColumns)
	return r.list(ctx, query, status)
}

// GetAll lists every order, oldest first.
func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders ORDER BY created_at", orderColumns)
	return r.list(ctx, query)
}

// GetAllExceptFinalized lists every non-finalized order, oldest first.
func (r *orderRepository) GetAllExceptFinalized(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE status <> $1 ORDER BY created_at", orderColumns)
	return r.list(ctx, query, model.OrderStatusFinalized)
}

// GetAllForKitchen lists non-finalized orders in kitchen priority order.
func (r *orderRepository) GetAllForKitchen(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE status <> $1
		ORDER BY
			CASE status
				WHEN 'READY' THEN 1
				WHEN 'PREPARING' THEN 2
				WHEN 'RECEIVED' THEN 3
				ELSE 4
			END,
			created_at
	`, orderColumns)
	return r.list(ctx, query, model.OrderStatusFinalized)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	refs := make([]*model.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}

	return orders, nil
}

// loadItems batch-loads the items of all given orders in one query.
func (r *orderRepository) loadItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	query := `
		SELECT id, order_id, product_id, quantity, unit_price, note
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]model.OrderItem, len(orders))
	for rows.Next() {
		var (
			item  model.OrderItem
			price float64
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &price, &item.Note); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		item.UnitPrice = model.MustMoney(price)
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return fmt.Errorf("error iterating order items: %w", err)
	}

	for _, order := range orders {
		order.Items = itemsByOrder[order.ID]
	}
	return nil
}

// Update rewrites the order header and replaces its item set.
func (r *orderRepository) Update(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET code = $2, customer_id = $3, status = $4, total = $5, updated_at = $6, finalized_at = $7
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		order.ID, order.Code, order.CustomerID, order.Status,
		order.Total.Value(), order.UpdatedAt, order.FinalizedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", order.ID); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to replace order items")
		return fmt.Errorf("failed to replace order items: %w", err)
	}

	return r.insertItems(ctx, tx, order.ID, order.Items)
}

// UpdateStatus performs a compare-and-swap status change. The row is only
// touched while its stored status still equals expected, which makes
// concurrent transitions on the same order safe. FINALIZED also stamps
// finalized_at.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected, next model.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1,
			updated_at = NOW(),
			finalized_at = CASE WHEN $1 = 'FINALIZED' THEN NOW() ELSE finalized_at END
		WHERE id = $2 AND status = $3
	`

	tag, err := tx.Exec(ctx, query, next, id, expected)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("order_id", id.String()).
			Str("expected", string(expected)).
			Str("next", string(next)).
			Msg("order status diverged, no rows updated")
		return false, nil
	}
	return true, nil
}

// Delete removes an order; its items go with it via the FK cascade.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// scanOrder scans one order header row.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order model.Order
		total float64
	)
	err := row.Scan(
		&order.ID, &order.Code, &order.CustomerID, &order.Status,
		&total, &order.CreatedAt, &order.UpdatedAt, &order.FinalizedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Total = model.MustMoney(total)
	return &order, nil
}
