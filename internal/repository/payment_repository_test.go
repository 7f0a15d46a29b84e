package repository

import (
	"context"
	"testing"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	orderRepo := NewOrderRepository(pool, logger)
	repo := NewPaymentRepository(pool, logger)
	ctx := context.Background()

	order := buildOrder(t, pool, "PAY001")
	require.NoError(t, createOrder(t, orderRepo, order))

	payment, err := model.NewPayment(uuid.New(), order.ID, order.Total, model.PaymentMethodPix)
	require.NoError(t, err)
	payment.SetExternalID("ext-pay-1")
	payment.SetQRCodeURL("https://gateway.example/qr/pay-1")

	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, payment))
	require.NoError(t, tx.Commit(ctx))

	t.Run("GetByOrderID", func(t *testing.T) {
		got, err := repo.GetByOrderID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, payment.ID, got.ID)
		assert.Equal(t, model.PaymentStatusPending, got.Status)
		assert.True(t, payment.Amount.Equals(got.Amount))
		require.NotNil(t, got.QRCodeURL)
	})

	t.Run("GetByExternalID", func(t *testing.T) {
		got, err := repo.GetByExternalID(ctx, "ext-pay-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, payment.ID, got.ID)
	})

	t.Run("Unknown lookups return nil", func(t *testing.T) {
		got, err := repo.GetByOrderID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.GetByExternalID(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPaymentRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	orderRepo := NewOrderRepository(pool, logger)
	repo := NewPaymentRepository(pool, logger)
	ctx := context.Background()

	order := buildOrder(t, pool, "PAY002")
	require.NoError(t, createOrder(t, orderRepo, order))

	payment, err := model.NewPayment(uuid.New(), order.ID, order.Total, model.PaymentMethodCreditCard)
	require.NoError(t, err)
	payment.SetExternalID("ext-pay-2")

	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, payment))
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, payment.TransitionTo(model.PaymentStatusApproved))
	payment.SetTransactionID("txn-42")

	tx, err = orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, tx, payment))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.PaymentStatusApproved, got.Status)
	require.NotNil(t, got.TransactionID)
	assert.Equal(t, "txn-42", *got.TransactionID)
}

func TestPaymentRepository_UpdateMissing(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	orderRepo := NewOrderRepository(pool, logger)
	repo := NewPaymentRepository(pool, logger)
	ctx := context.Background()

	ghost, err := model.NewPayment(uuid.New(), uuid.New(), model.MustMoney(10), model.PaymentMethodCash)
	require.NoError(t, err)

	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	err = repo.Update(ctx, tx, ghost)
	assert.ErrorIs(t, err, model.ErrPaymentNotFound)
	require.NoError(t, tx.Rollback(ctx))
}
