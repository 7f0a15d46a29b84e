package handler

import (
	"encoding/json"
	"net/http"

	"github.com/orderflow-tech/orderflow-application/internal/model"
	"github.com/orderflow-tech/orderflow-application/internal/service"
	"github.com/orderflow-tech/orderflow-application/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service  service.OrderService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, validate *validator.Validate, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders/checkout requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, validation.Message(err), h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/orders requests. Without query parameters it
// returns the kitchen queue; status, customerId and includeFinalized
// select the other listings.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		orders []model.OrderResponse
		err    error
	)
	switch {
	case q.Get("status") != "":
		var status model.OrderStatus
		status, err = model.ParseOrderStatus(q.Get("status"))
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		orders, err = h.service.ListByStatus(r.Context(), status)

	case q.Get("customerId") != "":
		var customerID uuid.UUID
		customerID, err = uuid.Parse(q.Get("customerId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid customer ID format", h.logger)
			return
		}
		orders, err = h.service.ListByCustomer(r.Context(), customerID)

	case q.Has("includeFinalized"):
		orders, err = h.service.ListAll(r.Context(), q.Get("includeFinalized") == "true")

	default:
		orders, err = h.service.ListKitchenQueue(r.Context())
	}
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// GetByCode handles GET /api/orders/code/{code} requests.
func (h *OrderHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "order code is required", h.logger)
		return
	}

	order, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, validation.Message(err), h.logger)
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}
	return orderID, true
}
