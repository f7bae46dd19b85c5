package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxAttempts   = 3
	defaultMaxConcurrent = 10
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	logger   *zap.Logger

	maxAttempts   int
	maxConcurrent int
}

// NewCartService builds the cart manager. maxAttempts bounds the retries of a
// mutation that lost an optimistic version race, maxConcurrent bounds product
// lookups while expanding a cart. Non-positive values select defaults.
func NewCartService(
	carts port.CartRepository,
	products port.ProductRepository,
	logger *zap.Logger,
	maxAttempts, maxConcurrent int,
) *CartService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &CartService{
		carts:         carts,
		products:      products,
		logger:        logger,
		maxAttempts:   maxAttempts,
		maxConcurrent: maxConcurrent,
	}
}

type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int // 0 means one
	Color     string
	Size      string
}

func (s *CartService) GetOrCreate(ctx context.Context, ownerID string) (domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, ownerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}

	cart, err = s.carts.CreateCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.CreateCart: %w", err)
	}

	s.logger.Debug("cart created", zap.String("owner_id", ownerID), zap.Stringer("cart_id", cart.ID))

	return cart, nil
}

func (s *CartService) GetExpanded(ctx context.Context, ownerID string) (domain.ExpandedCart, error) {
	cart, err := s.GetOrCreate(ctx, ownerID)
	if err != nil {
		return domain.ExpandedCart{}, err
	}

	return s.Expand(ctx, cart)
}

// Expand joins every cart item with its product record. Each distinct
// product is fetched once.
func (s *CartService) Expand(ctx context.Context, cart domain.Cart) (domain.ExpandedCart, error) {
	productIDs := make([]uuid.UUID, 0, len(cart.Items))
	seen := make(map[uuid.UUID]struct{}, len(cart.Items))
	for _, item := range cart.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	var (
		mu       sync.Mutex
		products = make(map[uuid.UUID]domain.Product, len(productIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, productID := range productIDs {
		g.Go(func() error {
			product, err := s.products.GetProduct(gctx, productID)
			if err != nil {
				return fmt.Errorf("products.GetProduct[%s]: %w", productID, err)
			}

			mu.Lock()
			products[productID] = product
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ExpandedCart{}, err
	}

	lines := make([]domain.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.CartLine{
			CartItem: item,
			Product:  products[item.ProductID],
		})
	}

	return domain.ExpandedCart{Cart: cart, Lines: lines}, nil
}

func (s *CartService) Add(ctx context.Context, ownerID string, in AddItemInput) (domain.Cart, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return domain.Cart{}, domain.NewValidationError("quantity", "must be a positive integer")
	}

	product, err := s.products.GetProduct(ctx, in.ProductID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	if err := validateVariant(product, in.Color, in.Size); err != nil {
		return domain.Cart{}, err
	}

	return s.mutate(ctx, ownerID, func(cart *domain.Cart) error {
		_, err := cart.AddItem(in.ProductID, in.Color, in.Size, in.Quantity)
		return err
	})
}

func (s *CartService) Decrease(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error) {
	return s.mutate(ctx, ownerID, func(cart *domain.Cart) error {
		return cart.DecreaseItem(cartItemID)
	})
}

func (s *CartService) Remove(ctx context.Context, ownerID string, cartItemID uuid.UUID) (domain.Cart, error) {
	return s.mutate(ctx, ownerID, func(cart *domain.Cart) error {
		return cart.RemoveItem(cartItemID)
	})
}

func (s *CartService) Clear(ctx context.Context, ownerID string) (domain.Cart, error) {
	return s.mutate(ctx, ownerID, func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
}

// mutate is a read-modify-write guarded by the cart version. A lost race
// re-reads the cart and re-applies fn.
func (s *CartService) mutate(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	for attempt := 1; ; attempt++ {
		cart, err := s.GetOrCreate(ctx, ownerID)
		if err != nil {
			return domain.Cart{}, err
		}

		if err := fn(&cart); err != nil {
			return domain.Cart{}, err
		}

		saved, err := s.carts.SaveCart(ctx, cart)
		if err == nil {
			return saved, nil
		}

		if !errors.Is(err, domain.ErrConflict) || attempt >= s.maxAttempts {
			return domain.Cart{}, fmt.Errorf("carts.SaveCart: %w", err)
		}

		s.logger.Debug("cart version conflict, retrying",
			zap.String("owner_id", ownerID),
			zap.Stringer("cart_id", cart.ID),
			zap.Int("attempt", attempt))
	}
}

func validateVariant(product domain.Product, color, size string) error {
	var fields []domain.FieldError

	switch {
	case color == "":
		fields = append(fields, domain.FieldError{Field: "color", Message: "Please choose a color"})
	case !product.HasColor(color):
		fields = append(fields, domain.FieldError{Field: "color", Message: "Enter a valid color"})
	}

	switch {
	case size == "":
		fields = append(fields, domain.FieldError{Field: "size", Message: "Please choose a size"})
	case !product.HasSize(size):
		fields = append(fields, domain.FieldError{Field: "size", Message: "Enter a valid size"})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}

	return nil
}
