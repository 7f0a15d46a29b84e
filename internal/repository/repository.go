package repository

import (
	"context"
	"errors"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// OrderRepository defines the interface for order data access operations.
// Lookup methods return (nil, nil) when the order does not exist; write
// methods that mutate multiple rows run inside the caller's transaction.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts the order header and all of its items.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order with its items by system id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByCode retrieves an order with its items by its short code.
	GetByCode(ctx context.Context, code string) (*model.Order, error)

	// GetByCustomerID lists a customer's orders, newest first.
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// GetByStatus lists orders in the given status, oldest first.
	GetByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// GetAll lists every order, oldest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetAllExceptFinalized lists every non-finalized order, oldest first.
	GetAllExceptFinalized(ctx context.Context) ([]model.Order, error)

	// GetAllForKitchen lists non-finalized orders in kitchen priority
	// order: READY, then PREPARING, then RECEIVED, oldest first within
	// each stage.
	GetAllForKitchen(ctx context.Context) ([]model.Order, error)

	// Update rewrites the order header and replaces its item set.
	Update(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdateStatus performs a compare-and-swap status change: the row is
	// updated only if its stored status still equals expected. It returns
	// false when the status diverged since the caller's read.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected, next model.OrderStatus) (bool, error)

	// Delete removes an order and its items. Administrative use only.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment data access operations.
type PaymentRepository interface {
	// Create inserts a new payment within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error

	// GetByOrderID retrieves the payment for an order.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)

	// GetByExternalID retrieves a payment by its gateway correlation id.
	GetByExternalID(ctx context.Context, externalID string) (*model.Payment, error)

	// Update persists payment mutations within the provided transaction.
	Update(ctx context.Context, tx pgx.Tx, payment *model.Payment) error
}

// CustomerRepository exposes the read-only customer lookups the core needs.
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// GetByCPF looks up a customer by the normalized document number.
	GetByCPF(ctx context.Context, cpf string) (*model.Customer, error)
}

// ProductRepository exposes the read-only product lookups the core needs.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products for view enrichment.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation, used to retry short-code generation on collision.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
