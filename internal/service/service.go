package service

import (
	"context"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
)

// OrderService defines the order-facing use cases.
type OrderService interface {
	// Checkout composes an order, its items and a payment intent against
	// the gateway as one atomic unit.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// GetByID returns the enriched order view.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// GetByCode returns the enriched order view by its short code.
	GetByCode(ctx context.Context, code string) (*model.OrderResponse, error)

	// ListKitchenQueue returns all non-finalized orders sorted for the
	// kitchen: closest to done first, oldest first within a stage.
	ListKitchenQueue(ctx context.Context) ([]model.OrderResponse, error)

	// ListByStatus returns orders in one status, oldest first.
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.OrderResponse, error)

	// ListByCustomer returns a customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error)

	// ListAll returns every order oldest first, optionally including
	// finalized ones.
	ListAll(ctx context.Context, includeFinalized bool) ([]model.OrderResponse, error)

	// UpdateStatus applies a single validated order transition.
	UpdateStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.OrderResponse, error)
}

// PaymentService defines the payment-facing use cases.
type PaymentService interface {
	// HandleWebhook reconciles a gateway settlement event onto the
	// payment state machine, cascading the order on approval. Safe under
	// at-least-once delivery.
	HandleWebhook(ctx context.Context, req *model.PaymentWebhookRequest) error

	// GetStatusByOrderID answers the customer-facing settlement query.
	GetStatusByOrderID(ctx context.Context, orderID uuid.UUID) (*model.PaymentStatusResponse, error)
}
