package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/httpapi"
	"github.com/nikolayk812/shop-checkout/internal/metrics"
	"github.com/nikolayk812/shop-checkout/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCarts struct {
	getExpanded func(ctx context.Context, ownerID string) (domain.ExpandedCart, error)
	add         func(ctx context.Context, ownerID string, in service.AddItemInput) (domain.Cart, error)
	decrease    func(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error)
	remove      func(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error)
}

func (f *fakeCarts) GetExpanded(ctx context.Context, ownerID string) (domain.ExpandedCart, error) {
	return f.getExpanded(ctx, ownerID)
}

func (f *fakeCarts) Add(ctx context.Context, ownerID string, in service.AddItemInput) (domain.Cart, error) {
	return f.add(ctx, ownerID, in)
}

func (f *fakeCarts) Decrease(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error) {
	return f.decrease(ctx, ownerID, cartItemID)
}

func (f *fakeCarts) Remove(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error) {
	return f.remove(ctx, ownerID, cartItemID)
}

type fakeCheckout struct {
	initiate   func(ctx context.Context, ownerID string, address domain.Address) (domain.PaymentSession, error)
	handle     func(ctx context.Context, event domain.PaymentEvent) (service.PaymentOutcome, error)
	listOrders func(ctx context.Context, ownerID string) ([]domain.Order, error)
	getOrder   func(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error)
}

func (f *fakeCheckout) InitiateCheckout(ctx context.Context, ownerID string, address domain.Address) (domain.PaymentSession, error) {
	return f.initiate(ctx, ownerID, address)
}

func (f *fakeCheckout) HandlePaymentEvent(ctx context.Context, event domain.PaymentEvent) (service.PaymentOutcome, error) {
	return f.handle(ctx, event)
}

func (f *fakeCheckout) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	return f.listOrders(ctx, ownerID)
}

func (f *fakeCheckout) GetOrder(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	return f.getOrder(ctx, ownerID, orderID)
}

type fakeProducts struct {
	get  func(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	list func(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
}

func (f *fakeProducts) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	return f.get(ctx, productID)
}

func (f *fakeProducts) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	return f.list(ctx, filter)
}

type fakeEvents struct {
	parse func(payload []byte, signature string) (domain.PaymentEvent, error)
}

func (f *fakeEvents) ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error) {
	return f.parse(payload, signature)
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	return f.err
}

type testServer struct {
	router   http.Handler
	metrics  *metrics.Metrics
	carts    *fakeCarts
	checkout *fakeCheckout
	products *fakeProducts
	events   *fakeEvents
	db       *fakePinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	reg := prometheus.NewRegistry()
	s := &testServer{
		metrics:  metrics.New(reg),
		carts:    &fakeCarts{},
		checkout: &fakeCheckout{},
		products: &fakeProducts{},
		events:   &fakeEvents{},
		db:       &fakePinger{},
	}

	h := httpapi.NewHandler(s.carts, s.checkout, s.products, s.events, s.db, s.metrics, zap.NewNop())
	s.router = httpapi.NewRouter(h, reg)

	return s
}

// do sends body as-is when it is a string and JSON-encodes it otherwise.
func (s *testServer) do(t *testing.T, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if owner != "" {
		req.Header.Set(httpapi.OwnerHeader, owner)
	}

	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

func newSignedRequest(payload, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Stripe-Signature", signature)

	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
