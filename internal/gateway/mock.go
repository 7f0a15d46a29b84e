package gateway

import (
	"context"
	"fmt"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MockGateway is the development stand-in for the real payment processor.
// It issues a fresh external id per intent, renders a QR artifact for PIX,
// and reports every payment as still pending; settlement is driven through
// the webhook endpoint instead.
type MockGateway struct {
	baseURL string
	logger  zerolog.Logger
}

// NewMockGateway creates a mock gateway.
func NewMockGateway(logger zerolog.Logger) *MockGateway {
	return &MockGateway{
		baseURL: "https://mock-payment-gateway.local",
		logger:  logger.With().Str("gateway", "mock").Logger(),
	}
}

// CreatePayment registers a payment intent.
func (g *MockGateway) CreatePayment(ctx context.Context, orderID uuid.UUID, amount model.Money, method model.PaymentMethod) (*CreatePaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	externalID := uuid.New().String()

	var qrCodeURL *string
	if method == model.PaymentMethodPix {
		url := fmt.Sprintf("%s/qr/%s", g.baseURL, externalID)
		qrCodeURL = &url
	}

	g.logger.Debug().
		Str("order_id", orderID.String()).
		Str("external_id", externalID).
		Str("method", string(method)).
		Float64("amount", amount.Value()).
		Msg("payment intent created")

	return &CreatePaymentResult{
		ExternalID: externalID,
		QRCodeURL:  qrCodeURL,
	}, nil
}

// GetPaymentStatus reports the intent as pending.
func (g *MockGateway) GetPaymentStatus(ctx context.Context, externalID string) (*PaymentStatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &PaymentStatusResult{Status: model.PaymentStatusPending}, nil
}
