package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/metrics"
	"github.com/nikolayk812/shop-checkout/internal/service"
	"go.uber.org/zap"
)

type CartService interface {
	GetExpanded(ctx context.Context, ownerID string) (domain.ExpandedCart, error)
	Add(ctx context.Context, ownerID string, in service.AddItemInput) (domain.Cart, error)
	Decrease(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error)
	Remove(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error)
}

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, ownerID string, address domain.Address) (domain.PaymentSession, error)
	HandlePaymentEvent(ctx context.Context, event domain.PaymentEvent) (service.PaymentOutcome, error)
	ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error)
}

type ProductReader interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
}

// EventParser verifies and decodes payment provider webhooks.
type EventParser interface {
	ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	carts    CartService
	checkout CheckoutService
	products ProductReader
	events   EventParser
	db       Pinger
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewHandler(
	carts CartService,
	checkout CheckoutService,
	products ProductReader,
	events EventParser,
	db Pinger,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		carts:    carts,
		checkout: checkout,
		products: products,
		events:   events,
		db:       db,
		metrics:  m,
		logger:   logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
