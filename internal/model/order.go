package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment stage of an order.
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusFinalized OrderStatus = "FINALIZED"
)

// orderTransitions maps each status to its single allowed successor.
// FINALIZED has no successor.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusReceived:  OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusFinalized,
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusReceived, OrderStatusPreparing, OrderStatusReady, OrderStatusFinalized:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// OrderItem represents a line item in an order. The unit price is a
// snapshot of the product price taken at checkout time.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice Money     `json:"-" db:"unit_price"`
	Note      *string   `json:"note,omitempty" db:"note"`
}

// NewOrderItem validates the quantity and captures the price snapshot.
func NewOrderItem(productID uuid.UUID, quantity int, unitPrice Money, note *string) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	return OrderItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Note:      note,
	}, nil
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() Money {
	// quantity is validated positive at construction
	total, _ := i.UnitPrice.Multiply(i.Quantity)
	return total
}

// Order is a customer's checked-out selection of items, tracked through
// the four-stage fulfilment state machine. Code is the 6-character
// human-facing identifier, distinct from the system id.
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Code        string      `json:"code" db:"code"`
	CustomerID  *uuid.UUID  `json:"customerId,omitempty" db:"customer_id"`
	Status      OrderStatus `json:"status" db:"status"`
	Items       []OrderItem `json:"items"`
	Total       Money       `json:"-"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
	FinalizedAt *time.Time  `json:"finalizedAt,omitempty" db:"finalized_at"`
}

// NewOrder builds an order in status RECEIVED with its full item set.
// An order with zero items is invalid.
func NewOrder(id uuid.UUID, code string, customerID *uuid.UUID, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	now := time.Now().UTC()
	o := &Order{
		ID:         id,
		Code:       code,
		CustomerID: customerID,
		Status:     OrderStatusReceived,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range o.Items {
		o.Items[i].OrderID = id
	}
	o.recomputeTotal()
	return o, nil
}

// TransitionTo advances the order to newStatus. Only the single allowed
// successor of the current status is accepted; anything else, including a
// self-transition or a skipped stage, fails with an invalid-transition
// error. Reaching FINALIZED also stamps FinalizedAt.
func (o *Order) TransitionTo(newStatus OrderStatus) error {
	next, ok := orderTransitions[o.Status]
	if !ok || next != newStatus {
		return NewInvalidTransition(string(o.Status), string(newStatus))
	}
	o.Status = newStatus
	now := time.Now().UTC()
	o.UpdatedAt = now
	if newStatus == OrderStatusFinalized {
		o.FinalizedAt = &now
	}
	return nil
}

// AddItem appends an item and recomputes the total. Items may only be
// changed while the order is still RECEIVED.
func (o *Order) AddItem(item OrderItem) error {
	if !o.CanBeUpdated() {
		return ErrOrderNotEditable
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	o.recomputeTotal()
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveItem deletes an item by id and recomputes the total. Removing the
// last remaining item is rejected, keeping the non-empty invariant.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if !o.CanBeUpdated() {
		return ErrOrderNotEditable
	}
	if len(o.Items) == 1 && o.Items[0].ID == itemID {
		return ErrEmptyOrder
	}
	kept := o.Items[:0]
	for _, item := range o.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	o.Items = kept
	o.recomputeTotal()
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// IsFinalized reports whether the order reached the terminal state.
func (o *Order) IsFinalized() bool {
	return o.Status == OrderStatusFinalized
}

// CanBeUpdated reports whether item mutation is still allowed.
func (o *Order) CanBeUpdated() bool {
	return o.Status == OrderStatusReceived
}

func (o *Order) recomputeTotal() {
	total := Money{}
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.Total = total
}
