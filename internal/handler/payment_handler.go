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

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	service  service.PaymentService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, validate *validator.Validate, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("handler", "payment").Logger(),
	}
}

// Webhook handles POST /api/webhooks/payment requests from the gateway.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, validation.Message(err), h.logger)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

// GetStatus handles GET /api/orders/{id}/payment/status requests.
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	resp, err := h.service.GetStatusByOrderID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
