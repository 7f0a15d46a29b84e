package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutRequest is the payload for creating an order with its payment.
// CustomerID accepts a customer id or a CPF; resolution happens in the
// service so both spellings share one error path.
type CheckoutRequest struct {
	CustomerID    *string               `json:"customerId,omitempty"`
	Items         []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string                `json:"paymentMethod" validate:"required,oneof=PIX CREDIT_CARD DEBIT_CARD CASH"`
}

// CheckoutItemRequest is a single requested line.
type CheckoutItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Note      *string `json:"note,omitempty"`
}

// UpdateOrderStatusRequest carries the target status for a transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=RECEIVED PREPARING READY FINALIZED"`
}

// PaymentWebhookRequest is the gateway's asynchronous settlement event.
type PaymentWebhookRequest struct {
	ExternalID    string  `json:"externalId" validate:"required"`
	Status        string  `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	TransactionID *string `json:"transactionId,omitempty"`
}

// CustomerSummary is the customer slice of an enriched order view.
type CustomerSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	CPF  string    `json:"cpf"`
}

// ProductSummary is the product slice of an enriched order item.
type ProductSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
}

// OrderItemResponse is an order line enriched with product details.
// Product is omitted when the lookup degrades.
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Product   *ProductSummary `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"unitPrice"`
	LineTotal float64         `json:"lineTotal"`
	Note      *string         `json:"note,omitempty"`
}

// PaymentSummary is the payment slice of order-facing responses.
type PaymentSummary struct {
	ID        uuid.UUID     `json:"id"`
	Status    PaymentStatus `json:"status"`
	Method    PaymentMethod `json:"method"`
	QRCodeURL *string       `json:"qrCodeUrl,omitempty"`
	Amount    float64       `json:"amount"`
}

// OrderResponse is the fully enriched order view.
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	Code        string              `json:"code"`
	CustomerID  *uuid.UUID          `json:"customerId,omitempty"`
	Customer    *CustomerSummary    `json:"customer,omitempty"`
	Status      OrderStatus         `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	Total       float64             `json:"total"`
	Payment     *PaymentSummary     `json:"payment,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	FinalizedAt *time.Time          `json:"finalizedAt,omitempty"`
}

// CheckoutResponse composes the enriched order with its payment summary.
type CheckoutResponse struct {
	Order   OrderResponse  `json:"order"`
	Payment PaymentSummary `json:"payment"`
}

// PaymentStatusResponse answers the customer-facing settlement query.
type PaymentStatusResponse struct {
	OrderID   uuid.UUID     `json:"orderId"`
	Status    PaymentStatus `json:"status"`
	QRCodeURL *string       `json:"qrCodeUrl,omitempty"`
}
