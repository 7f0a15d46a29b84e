package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeCustomerNotFound     = "CUSTOMER_NOT_FOUND"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable   = "PRODUCT_UNAVAILABLE"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeEmptyOrder           = "EMPTY_ORDER"
	ErrCodeNegativeAmount       = "NEGATIVE_AMOUNT"
	ErrCodeInvalidCPF           = "INVALID_CPF"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeOrderNotEditable     = "ORDER_NOT_EDITABLE"
	ErrCodeStatusConflict       = "STATUS_CONFLICT"
	ErrCodeGatewayError         = "GATEWAY_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure carrying a stable error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so parametrised errors built with the
// New* helpers compare equal to the sentinel values below under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidTransition reports a state-machine edge that is not allowed.
func NewInvalidTransition(from, to string) *DomainError {
	return NewDomainError(ErrCodeInvalidTransition, fmt.Sprintf("invalid status transition: %s -> %s", from, to))
}

// NewProductNotFound names the missing product in the message.
func NewProductNotFound(productID string) *DomainError {
	return NewDomainError(ErrCodeProductNotFound, fmt.Sprintf("product %s not found", productID))
}

// NewProductUnavailable names the inactive product in the message.
func NewProductUnavailable(name string) *DomainError {
	return NewDomainError(ErrCodeProductUnavailable, fmt.Sprintf("product %s is not available", name))
}

// NewGatewayError wraps an upstream payment gateway failure.
func NewGatewayError(reason string) *DomainError {
	return NewDomainError(ErrCodeGatewayError, fmt.Sprintf("payment gateway error: %s", reason))
}

// Common domain errors
var (
	ErrCustomerNotFound   = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductUnavailable = NewDomainError(ErrCodeProductUnavailable, "Product is not available")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrPaymentNotFound    = NewDomainError(ErrCodePaymentNotFound, "Payment not found")
	ErrInvalidTransition  = NewDomainError(ErrCodeInvalidTransition, "Invalid status transition")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmptyOrder         = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
	ErrNegativeAmount     = NewDomainError(ErrCodeNegativeAmount, "Monetary amount cannot be negative")
	ErrInvalidCPF         = NewDomainError(ErrCodeInvalidCPF, "Invalid CPF")
	ErrInvalidMethod      = NewDomainError(ErrCodeInvalidPaymentMethod, "Invalid payment method")
	ErrInvalidStatus      = NewDomainError(ErrCodeInvalidStatus, "Invalid status value")
	ErrOrderNotEditable   = NewDomainError(ErrCodeOrderNotEditable, "Order items can only be changed while the order is received")
	ErrStatusConflict     = NewDomainError(ErrCodeStatusConflict, "Order status changed concurrently, reload and retry")
)
