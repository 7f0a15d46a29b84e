package service

import (
	"context"
	"fmt"

	"github.com/orderflow-tech/orderflow-application/internal/model"
	"github.com/orderflow-tech/orderflow-application/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

func (s *paymentService) HandleWebhook(ctx context.Context, req *model.PaymentWebhookRequest) error {
	status, err := model.ParsePaymentStatus(req.Status)
	if err != nil {
		return err
	}

	payment, err := s.paymentRepo.GetByExternalID(ctx, req.ExternalID)
	if err != nil {
		return err
	}
	if payment == nil {
		return model.ErrPaymentNotFound
	}

	// The gateway delivers at least once. A replay of the terminal status
	// we already hold is acknowledged without touching anything.
	if payment.Status == status && !payment.IsPending() {
		s.logger.Info().
			Str("external_id", req.ExternalID).
			Str("status", string(status)).
			Msg("duplicate webhook delivery ignored")
		return nil
	}

	if err := payment.TransitionTo(status); err != nil {
		return err
	}
	if req.TransactionID != nil {
		payment.SetTransactionID(*req.TransactionID)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = s.paymentRepo.Update(ctx, tx, payment); err != nil {
		return err
	}

	// Approval releases the order to the kitchen. The compare-and-set only
	// fires on an order still sitting in RECEIVED; anything later already
	// moved on and is left alone.
	if payment.IsApproved() {
		var moved bool
		moved, err = s.orderRepo.UpdateStatus(ctx, tx, payment.OrderID,
			model.OrderStatusReceived, model.OrderStatusPreparing)
		if err != nil {
			return err
		}
		if !moved {
			s.logger.Warn().
				Str("order_id", payment.OrderID.String()).
				Msg("order already past RECEIVED, cascade skipped")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Str("payment_id", payment.ID.String()).
		Str("order_id", payment.OrderID.String()).
		Str("status", string(payment.Status)).
		Msg("payment reconciled")
	return nil
}

func (s *paymentService) GetStatusByOrderID(ctx context.Context, orderID uuid.UUID) (*model.PaymentStatusResponse, error) {
	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, model.ErrPaymentNotFound
	}
	return &model.PaymentStatusResponse{
		OrderID:   payment.OrderID,
		Status:    payment.Status,
		QRCodeURL: payment.QRCodeURL,
	}, nil
}
