package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-checkout/internal/db"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	row, err := r.q.GetCartByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("owner[%s]: %w", ownerID, domain.ErrCartNotFound)
		}
		return domain.Cart{}, fmt.Errorf("q.GetCartByOwner: %w", err)
	}

	cart, err := mapCartToDomain(row)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapCartToDomain: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCartByID(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	row, err := r.q.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("cart[%s]: %w", cartID, domain.ErrCartNotFound)
		}
		return domain.Cart{}, fmt.Errorf("q.GetCartByID: %w", err)
	}

	cart, err := mapCartToDomain(row)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapCartToDomain: %w", err)
	}

	return cart, nil
}

// CreateCart inserts an empty cart for the owner. A concurrent creator that
// loses the unique owner race reads back the winner's cart.
func (r *cartRepository) CreateCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		row, err := q.CreateCart(ctx, db.CreateCartParams{
			ID:      uuid.New(),
			OwnerID: ownerID,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			row, err = q.GetCartByOwner(ctx, ownerID)
			if err != nil {
				return domain.Cart{}, fmt.Errorf("q.GetCartByOwner: %w", err)
			}
		} else if err != nil {
			return domain.Cart{}, fmt.Errorf("q.CreateCart: %w", err)
		}

		cart, err := mapCartToDomain(row)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("mapCartToDomain: %w", err)
		}

		return cart, nil
	})
}

func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}
	if cart.TotalQuantity < 0 || cart.TotalQuantity > domain.MaxCartQuantity {
		return domain.Cart{}, fmt.Errorf("cart[%s] totalQuantity[%d] is out of range", cart.ID, cart.TotalQuantity)
	}

	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("json.Marshal: %w", err)
	}

	rowsAffected, err := r.q.UpdateCart(ctx, db.UpdateCartParams{
		ID:            cart.ID,
		Items:         itemsJSON,
		TotalQuantity: int32(cart.TotalQuantity),
		Version:       cart.Version,
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.UpdateCart: %w", err)
	}

	if rowsAffected == 0 {
		return domain.Cart{}, fmt.Errorf("cart[%s] version[%d]: %w", cart.ID, cart.Version, domain.ErrConflict)
	}

	cart.Items = items
	cart.Version++

	return cart, nil
}

func mapCartToDomain(row db.Cart) (domain.Cart, error) {
	items := []domain.CartItem{}
	if err := json.Unmarshal(row.Items, &items); err != nil {
		return domain.Cart{}, fmt.Errorf("cart[%s] items are not valid: %w", row.ID, err)
	}

	return domain.Cart{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Items:         items,
		TotalQuantity: int(row.TotalQuantity),
		Version:       row.Version,
	}, nil
}
