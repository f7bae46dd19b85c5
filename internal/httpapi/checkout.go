package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/service"
	"go.uber.org/zap"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBytes = 64 << 10

	outcomeRejected = "rejected"
)

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.checkout.ListOrders(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, mapOrderToResponse(o))
	}

	writeJSON(w, http.StatusOK, map[string][]OrderResponse{"orders": resp})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseID("orderId", chi.URLParam(r, "orderId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	order, err := h.checkout.GetOrder(r.Context(), ownerFromContext(r.Context()), orderID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]OrderResponse{"order": mapOrderToResponse(order)})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	session, err := h.checkout.InitiateCheckout(r.Context(), ownerFromContext(r.Context()), domain.Address{
		Address1:   req.ShippingAddress.Address1,
		Address2:   req.ShippingAddress.Address2,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]domain.PaymentSession{"session": session})
}

// Webhook acknowledges provider events. A non-2xx answer makes the provider
// redeliver, so only failures worth retrying get one.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		h.metrics.PaymentEvents.WithLabelValues(outcomeRejected).Inc()
		h.respondError(w, r, fmt.Errorf("%w: %w", errMalformedBody, err))
		return
	}

	event, err := h.events.ParseEvent(payload, r.Header.Get(signatureHeader))
	if errors.Is(err, domain.ErrBadEvent) {
		// Signed by the provider, so a redelivery would carry the same data.
		h.metrics.PaymentEvents.WithLabelValues(string(service.OutcomeDropped)).Inc()
		h.logger.Warn("payment event dropped",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}
	if err != nil {
		h.metrics.PaymentEvents.WithLabelValues(outcomeRejected).Inc()
		h.respondError(w, r, fmt.Errorf("events.ParseEvent: %w", err))
		return
	}

	// The order transaction must not be cut short by the provider hanging up.
	ctx := context.WithoutCancel(r.Context())

	outcome, err := h.checkout.HandlePaymentEvent(ctx, event)
	h.metrics.PaymentEvents.WithLabelValues(string(outcome)).Inc()
	if err != nil {
		h.respondError(w, r, fmt.Errorf("checkout.HandlePaymentEvent: %w", err))
		return
	}

	h.logger.Debug("payment event processed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("event_id", event.ID),
		zap.String("outcome", string(outcome)))

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
