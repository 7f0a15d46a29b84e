package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(uuid.New(), uuid.New(), MustMoney(20.00), PaymentMethodPix)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := testPayment(t)

	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.True(t, p.IsPending())
	assert.Equal(t, 20.00, p.Amount.Value())
	assert.Nil(t, p.ExternalID)
	assert.Nil(t, p.TransactionID)
}

func TestNewPayment_RejectsUnknownMethod(t *testing.T) {
	_, err := NewPayment(uuid.New(), uuid.New(), MustMoney(20.00), PaymentMethod("BARTER"))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestPayment_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    PaymentStatus
		to      PaymentStatus
		wantErr bool
	}{
		{name: "pending to approved", from: PaymentStatusPending, to: PaymentStatusApproved},
		{name: "pending to rejected", from: PaymentStatusPending, to: PaymentStatusRejected},
		{name: "pending to pending", from: PaymentStatusPending, to: PaymentStatusPending, wantErr: true},
		{name: "approved is terminal", from: PaymentStatusApproved, to: PaymentStatusRejected, wantErr: true},
		{name: "approved cannot repeat", from: PaymentStatusApproved, to: PaymentStatusApproved, wantErr: true},
		{name: "rejected is terminal", from: PaymentStatusRejected, to: PaymentStatusApproved, wantErr: true},
		{name: "rejected cannot revert", from: PaymentStatusRejected, to: PaymentStatusPending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPayment(t)
			p.Status = tt.from

			err := p.TransitionTo(tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, p.Status)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.to, p.Status)
			}
		})
	}
}

func TestPayment_GatewayFieldsIndependentOfStatus(t *testing.T) {
	p := testPayment(t)
	require.NoError(t, p.TransitionTo(PaymentStatusApproved))

	p.SetExternalID("ext-1")
	p.SetTransactionID("txn-1")
	p.SetQRCodeURL("https://gateway.example/qr/ext-1")

	assert.Equal(t, "ext-1", *p.ExternalID)
	assert.Equal(t, "txn-1", *p.TransactionID)
	assert.Equal(t, "https://gateway.example/qr/ext-1", *p.QRCodeURL)
	assert.True(t, p.IsApproved())
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("CASH")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCash, method)

	_, err = ParsePaymentMethod("CHEQUE")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusApproved, status)

	_, err = ParsePaymentStatus("SETTLED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
