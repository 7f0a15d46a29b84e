package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error onto an HTTP status via its domain
// code. Anything that is not a DomainError is an unexpected failure.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}
	writeError(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

// statusForCode picks the HTTP status for a domain error code. Bad
// references inside a write payload are client errors, not 404s; only
// lookups of the addressed resource itself map to not-found.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeOrderNotFound, model.ErrCodePaymentNotFound:
		return http.StatusNotFound
	case model.ErrCodeStatusConflict:
		return http.StatusConflict
	case model.ErrCodeGatewayError:
		return http.StatusBadGateway
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
