package service_test

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
)

type fakeCarts struct {
	mu        sync.Mutex
	byOwner   map[string]domain.Cart
	conflicts int // SaveCart calls to fail with ErrConflict
	saveErr   error
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{byOwner: map[string]domain.Cart{}}
}

func (f *fakeCarts) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.byOwner[ownerID]
	if !ok {
		return domain.Cart{}, fmt.Errorf("owner[%s]: %w", ownerID, domain.ErrCartNotFound)
	}
	return cloneCart(cart), nil
}

func (f *fakeCarts) GetCartByID(_ context.Context, cartID uuid.UUID) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, cart := range f.byOwner {
		if cart.ID == cartID {
			return cloneCart(cart), nil
		}
	}
	return domain.Cart{}, fmt.Errorf("cart[%s]: %w", cartID, domain.ErrCartNotFound)
}

func (f *fakeCarts) CreateCart(_ context.Context, ownerID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cart, ok := f.byOwner[ownerID]; ok {
		return cloneCart(cart), nil
	}

	cart := domain.NewCart(ownerID)
	cart.Version = 1
	f.byOwner[ownerID] = cart
	return cloneCart(cart), nil
}

func (f *fakeCarts) SaveCart(_ context.Context, cart domain.Cart) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return domain.Cart{}, f.saveErr
	}

	if f.conflicts > 0 {
		f.conflicts--
		return domain.Cart{}, domain.ErrConflict
	}

	stored, ok := f.byOwner[cart.OwnerID]
	if !ok || stored.Version != cart.Version {
		return domain.Cart{}, domain.ErrConflict
	}

	cart.Version++
	f.byOwner[cart.OwnerID] = cloneCart(cart)
	return cart, nil
}

func (f *fakeCarts) put(cart domain.Cart) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byOwner[cart.OwnerID] = cloneCart(cart)
}

func (f *fakeCarts) snapshot() map[string]domain.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.byOwner)
}

func (f *fakeCarts) restore(m map[string]domain.Cart) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byOwner = m
}

func cloneCart(c domain.Cart) domain.Cart {
	c.Items = append([]domain.CartItem{}, c.Items...)
	return c
}

type fakeProducts struct {
	byID  map[uuid.UUID]domain.Product
	calls atomic.Int32
}

func newFakeProducts(products ...domain.Product) *fakeProducts {
	f := &fakeProducts{byID: map[uuid.UUID]domain.Product{}}
	for _, p := range products {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	f.calls.Add(1)

	p, ok := f.byID[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrProductNotFound)
	}
	return p, nil
}

func (f *fakeProducts) ListProducts(context.Context, domain.ProductFilter) (domain.ProductPage, error) {
	return domain.ProductPage{}, nil
}

func (f *fakeProducts) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	f.byID[p.ID] = p
	return p, nil
}

type fakeUsers struct {
	byID map[string]domain.User
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (domain.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("user[%s]: %w", userID, domain.ErrUserNotFound)
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user with email[%s]: %w", email, domain.ErrUserNotFound)
}

func (f *fakeUsers) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	f.byID[u.ID] = u
	return u, nil
}

type fakeOrders struct {
	mu    sync.Mutex
	byRef map[string]domain.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byRef: map[string]domain.Order{}}
}

func (f *fakeOrders) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byRef[order.PaymentRef]; ok {
		return domain.Order{}, fmt.Errorf("order for payment[%s]: %w", order.PaymentRef, domain.ErrAlreadyExists)
	}
	f.byRef[order.PaymentRef] = order
	return order, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.byRef {
		if o.ID == orderID && o.OwnerID == ownerID {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
}

func (f *fakeOrders) ListOrders(_ context.Context, ownerID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	orders := []domain.Order{}
	for _, o := range f.byRef {
		if o.OwnerID == ownerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byRef)
}

func (f *fakeOrders) snapshot() map[string]domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.byRef)
}

func (f *fakeOrders) restore(m map[string]domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byRef = m
}

// fakeUnitOfWork restores both stores when the callback fails.
type fakeUnitOfWork struct {
	carts  *fakeCarts
	orders *fakeOrders
	err    error
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(repos port.TxRepositories) error) error {
	if u.err != nil {
		return u.err
	}

	carts, orders := u.carts.snapshot(), u.orders.snapshot()

	if err := fn(port.TxRepositories{Carts: u.carts, Orders: u.orders}); err != nil {
		u.carts.restore(carts)
		u.orders.restore(orders)
		return err
	}
	return nil
}

type fakeGateway struct {
	requests []domain.PaymentSessionRequest
	err      error
}

func (f *fakeGateway) CreateSession(_ context.Context, req domain.PaymentSessionRequest) (domain.PaymentSession, error) {
	if f.err != nil {
		return domain.PaymentSession{}, f.err
	}
	f.requests = append(f.requests, req)
	return domain.PaymentSession{
		ID:  "cs_test_" + req.CorrelationRef,
		URL: "https://checkout.example.com/" + req.CorrelationRef,
	}, nil
}

func (f *fakeGateway) ParseEvent([]byte, string) (domain.PaymentEvent, error) {
	return domain.PaymentEvent{}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, order domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	return f.err
}
