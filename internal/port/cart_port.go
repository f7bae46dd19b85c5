package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	GetCartByID(ctx context.Context, cartID uuid.UUID) (domain.Cart, error)
	// CreateCart returns the existing cart when the owner already has one.
	CreateCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// SaveCart fails with domain.ErrConflict when cart.Version is stale.
	SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)
}
