package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const keyPrefix = "shop:product"

type productCache struct {
	next   port.ProductRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache puts a read-through Redis cache in front of single product
// lookups. Redis failures are logged and fall through to next.
func NewProductCache(next port.ProductRepository, client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) port.ProductRepository {
	return &productCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

type productRecord struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Colors      []domain.Color  `json:"colors"`
	Sizes       []string        `json:"sizes"`
	Tags        []string        `json:"tags"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (c *productCache) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	key := productKey(productID)

	product, found, err := c.get(ctx, key)
	if err != nil {
		c.logger.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return product, nil
	}

	product, err = c.next.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	if err := c.set(ctx, key, product); err != nil {
		c.logger.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
	}

	return product, nil
}

func (c *productCache) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	return c.next.ListProducts(ctx, filter)
}

func (c *productCache) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := c.next.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	if err := c.client.Del(ctx, productKey(created.ID)).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", zap.Stringer("product_id", created.ID), zap.Error(err))
	}

	return created, nil
}

func (c *productCache) get(ctx context.Context, key string) (domain.Product, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("client.Get: %w", err)
	}

	var rec productRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Product{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cur, err := currency.ParseISO(rec.Currency)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("currency[%s] is not valid: %w", rec.Currency, err)
	}

	return domain.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       domain.NewMoney(rec.Price, cur),
		Category:    rec.Category,
		SubCategory: rec.SubCategory,
		Colors:      rec.Colors,
		Sizes:       rec.Sizes,
		Tags:        rec.Tags,
		CreatedAt:   rec.CreatedAt,
	}, true, nil
}

func (c *productCache) set(ctx context.Context, key string, p domain.Product) error {
	data, err := json.Marshal(productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Amount,
		Currency:    p.Price.Currency.String(),
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func productKey(productID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", keyPrefix, productID)
}
