package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRejected PaymentStatus = "REJECTED"
)

// paymentTransitions holds the only two allowed edges. APPROVED and
// REJECTED are terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusApproved, PaymentStatusRejected},
}

// ParsePaymentStatus validates a raw status string.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return PaymentStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// PaymentMethod selects how the customer settles the order.
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodCash       PaymentMethod = "CASH"
)

// ParsePaymentMethod validates a raw method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodCash:
		return PaymentMethod(s), nil
	}
	return "", ErrInvalidMethod
}

// Payment is the settlement record for exactly one order, reconciled
// asynchronously via the gateway webhook. ExternalID correlates it with
// the gateway, TransactionID is set on settlement, and QRCodeURL is the
// display artifact issued for PIX payments.
type Payment struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	OrderID       uuid.UUID     `json:"orderId" db:"order_id"`
	Amount        Money         `json:"-" db:"amount"`
	Method        PaymentMethod `json:"method" db:"method"`
	Status        PaymentStatus `json:"status" db:"status"`
	ExternalID    *string       `json:"externalId,omitempty" db:"external_id"`
	TransactionID *string       `json:"transactionId,omitempty" db:"transaction_id"`
	QRCodeURL     *string       `json:"qrCodeUrl,omitempty" db:"qr_code_url"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// NewPayment creates a PENDING payment for the given order and amount.
func NewPayment(id, orderID uuid.UUID, amount Money, method PaymentMethod) (*Payment, error) {
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Payment{
		ID:        id,
		OrderID:   orderID,
		Amount:    amount,
		Method:    method,
		Status:    PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TransitionTo moves the payment to newStatus, rejecting every edge other
// than PENDING->APPROVED and PENDING->REJECTED.
func (p *Payment) TransitionTo(newStatus PaymentStatus) error {
	for _, allowed := range paymentTransitions[p.Status] {
		if allowed == newStatus {
			p.Status = newStatus
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return NewInvalidTransition(string(p.Status), string(newStatus))
}

// SetExternalID records the gateway correlation id.
func (p *Payment) SetExternalID(externalID string) {
	p.ExternalID = &externalID
	p.UpdatedAt = time.Now().UTC()
}

// SetTransactionID records the settlement transaction id.
func (p *Payment) SetTransactionID(transactionID string) {
	p.TransactionID = &transactionID
	p.UpdatedAt = time.Now().UTC()
}

// SetQRCodeURL records the display artifact issued by the gateway.
func (p *Payment) SetQRCodeURL(url string) {
	p.QRCodeURL = &url
	p.UpdatedAt = time.Now().UTC()
}

// IsApproved reports settlement success.
func (p *Payment) IsApproved() bool {
	return p.Status == PaymentStatusApproved
}

// IsRejected reports settlement failure.
func (p *Payment) IsRejected() bool {
	return p.Status == PaymentStatusRejected
}

// IsPending reports that the gateway has not reconciled the payment yet.
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}
