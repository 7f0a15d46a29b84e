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

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, name, cpf, email, created_at
		FROM customers
		WHERE id = $1
	`

	var customer model.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.CPF, &customer.Email, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return &customer, nil
}

// GetByCPF retrieves a single customer by the normalized document number.
func (r *customerRepository) GetByCPF(ctx context.Context, cpf string) (*model.Customer, error) {
	query := `
		SELECT id, name, cpf, email, created_at
		FROM customers
		WHERE cpf = $1
	`

	var customer model.Customer
	err := r.pool.QueryRow(ctx, query, cpf).Scan(
		&customer.ID, &customer.Name, &customer.CPF, &customer.Email, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("cpf", cpf).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cpf", cpf).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return &customer, nil
}
