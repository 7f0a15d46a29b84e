// Package gateway defines the contract with the external payment
// processor. Only intent creation and status queries are part of the
// core; settlement results arrive asynchronously through the webhook.
package gateway

import (
	"context"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
)

// CreatePaymentResult is the gateway's answer to a payment intent.
// QRCodeURL is only present for methods that render a scannable artifact.
type CreatePaymentResult struct {
	ExternalID string
	QRCodeURL  *string
}

// PaymentStatusResult is the gateway's answer to a status query.
type PaymentStatusResult struct {
	Status        model.PaymentStatus
	TransactionID *string
}

// Gateway is the external payment processor contract.
type Gateway interface {
	// CreatePayment registers a payment intent for the order and returns
	// the gateway correlation id plus an optional display artifact.
	CreatePayment(ctx context.Context, orderID uuid.UUID, amount model.Money, method model.PaymentMethod) (*CreatePaymentResult, error)

	// GetPaymentStatus queries the gateway-side settlement state.
	GetPaymentStatus(ctx context.Context, externalID string) (*PaymentStatusResult, error)
}
