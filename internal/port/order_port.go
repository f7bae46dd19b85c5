package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
)

type OrderRepository interface {
	// CreateOrder fails with domain.ErrAlreadyExists when an order with the
	// same payment reference was already recorded.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error)
}

// TxRepositories are bound to a single database transaction.
type TxRepositories struct {
	Carts  CartRepository
	Orders OrderRepository
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}
