package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"go.uber.org/zap"
)

var (
	errMalformedBody = errors.New("malformed request body")
	errUnauthorized  = errors.New("not authenticated")
)

type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

// errorStatuses is ordered from specific to general; the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{errMalformedBody, http.StatusBadRequest},
	{domain.ErrBadSignature, http.StatusBadRequest},
	{errUnauthorized, http.StatusUnauthorized},
	{domain.ErrValidation, http.StatusUnprocessableEntity},
	{domain.ErrEmptyCart, http.StatusUnprocessableEntity},
	{domain.ErrProductNotFound, http.StatusNotFound},
	{domain.ErrCartItemNotDeleted, http.StatusNotFound},
	{domain.ErrCartItemNotFound, http.StatusNotFound},
	{domain.ErrCartNotFound, http.StatusNotFound},
	{domain.ErrOrderNotFound, http.StatusNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrAlreadyExists, http.StatusConflict},
	{domain.ErrPayment, http.StatusBadGateway},
}

// statusFromError maps an error to its HTTP status and the client facing
// message. Unknown errors are internal and their text is not exposed.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}

	return http.StatusInternalServerError, "internal server error"
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	resp := ErrorResponse{
		Message: message,
		Errors:  []domain.FieldError{},
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp.Errors = vErr.Fields
	}

	logger := h.logger.With(
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status))
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.Error(err))
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
