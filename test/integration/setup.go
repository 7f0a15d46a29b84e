package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			cpf VARCHAR(11) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
			category_id UUID,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			code VARCHAR(6) NOT NULL UNIQUE,
			customer_id UUID REFERENCES customers(id),
			status VARCHAR(20) NOT NULL,
			total DECIMAL(10, 2) NOT NULL CHECK (total >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			finalized_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10, 2) NOT NULL CHECK (unit_price >= 0),
			note TEXT
		);

		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL UNIQUE REFERENCES orders(id),
			amount DECIMAL(10, 2) NOT NULL CHECK (amount >= 0),
			method VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			external_id VARCHAR(255) UNIQUE,
			transaction_id VARCHAR(255),
			qr_code_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_payments_external_id ON payments(external_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data and returns the rows by name.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) map[string]model.Product {
	t.Helper()

	ctx := context.Background()

	products := []model.Product{
		{ID: uuid.New(), Name: "Burger", Description: "House burger", Price: model.MustMoney(25.90), Active: true, CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Name: "Fries", Description: "Crinkle cut", Price: model.MustMoney(12.50), Active: true, CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Name: "Soda", Description: "Cold can", Price: model.MustMoney(7.00), Active: true, CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Name: "Retired Combo", Description: "No longer sold", Price: model.MustMoney(39.90), Active: false, CreatedAt: time.Now().UTC()},
	}

	byName := make(map[string]model.Product, len(products))
	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, description, price, category_id, active, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
			p.ID, p.Name, p.Description, p.Price.Value(), p.CategoryID, p.Active, p.CreatedAt,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
		byName[p.Name] = p
	}
	return byName
}

// SeedCustomer inserts one test customer and returns it.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool) model.Customer {
	t.Helper()

	customer := model.Customer{
		ID:        uuid.New(),
		Name:      "Maria Silva",
		CPF:       "52998224725",
		Email:     "maria@example.com",
		CreatedAt: time.Now().UTC(),
	}

	_, err := pool.Exec(context.Background(),
		"INSERT INTO customers (id, name, cpf, email, created_at) VALUES ($1, $2, $3, $4, $5)",
		customer.ID, customer.Name, customer.CPF, customer.Email, customer.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"payments", "order_items", "orders", "products", "customers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
