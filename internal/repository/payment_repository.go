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

const paymentColumns = "id, order_id, amount, method, status, external_id, transaction_id, qr_code_url, created_at, updated_at"

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Create inserts a new payment within the provided transaction.
func (r *paymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount, method, status, external_id, transaction_id, qr_code_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		payment.ID, payment.OrderID, payment.Amount.Value(), payment.Method, payment.Status,
		payment.ExternalID, payment.TransactionID, payment.QRCodeURL,
		payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("payment_id", payment.ID.String()).
			Str("order_id", payment.OrderID.String()).
			Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.logger.Debug().
		Str("payment_id", payment.ID.String()).
		Str("order_id", payment.OrderID.String()).
		Msg("payment created")

	return nil
}

// GetByOrderID retrieves the payment for an order.
func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE order_id = $1", paymentColumns)
	return r.getOne(ctx, query, orderID)
}

// GetByExternalID retrieves a payment by its gateway correlation id.
func (r *paymentRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE external_id = $1", paymentColumns)
	return r.getOne(ctx, query, externalID)
}

func (r *paymentRepository) getOne(ctx context.Context, query string, arg any) (*model.Payment, error) {
	var (
		payment model.Payment
		amount  float64
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&payment.ID, &payment.OrderID, &amount, &payment.Method, &payment.Status,
		&payment.ExternalID, &payment.TransactionID, &payment.QRCodeURL,
		&payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query payment")
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}
	payment.Amount = model.MustMoney(amount)
	return &payment, nil
}

// Update persists payment mutations within the provided transaction.
func (r *paymentRepository) Update(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, external_id = $3, transaction_id = $4, qr_code_url = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		payment.ID, payment.Status, payment.ExternalID, payment.TransactionID,
		payment.QRCodeURL, payment.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to update payment")
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}
	return nil
}
