package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-checkout/internal/db"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: db.New(pool)}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	filter = filter.Normalize()

	countParams := db.CountProductsParams{
		Category:    optionalText(filter.Category),
		SubCategory: optionalText(filter.SubCategory),
		Tag:         optionalText(filter.Tag),
		Size:        optionalText(filter.Size),
		Color:       optionalText(filter.Color),
		MinPrice:    filter.MinPrice,
		MaxPrice:    filter.MaxPrice,
		Search:      optionalText(filter.Search),
	}

	total, err := r.q.CountProducts(ctx, countParams)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("q.CountProducts: %w", err)
	}

	rows, err := r.q.ListProducts(ctx, db.ListProductsParams{
		Category:    countParams.Category,
		SubCategory: countParams.SubCategory,
		Tag:         countParams.Tag,
		Size:        countParams.Size,
		Color:       countParams.Color,
		MinPrice:    countParams.MinPrice,
		MaxPrice:    countParams.MaxPrice,
		Search:      countParams.Search,
		SortBy:      string(filter.SortBy),
		Limit:       int32(filter.PageSize),
		Offset:      int32((filter.Page - 1) * filter.PageSize),
	})
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return domain.ProductPage{}, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return domain.ProductPage{
		Products:    products,
		Total:       total,
		Pages:       int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize)),
		CurrentPage: filter.Page,
	}, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	colors := product.Colors
	if colors == nil {
		colors = []domain.Color{}
	}
	colorsJSON, err := json.Marshal(colors)
	if err != nil {
		return domain.Product{}, fmt.Errorf("json.Marshal: %w", err)
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Category:      product.Category,
		SubCategory:   product.SubCategory,
		Colors:        colorsJSON,
		Sizes:         nonNil(product.Sizes),
		Tags:          nonNil(product.Tags),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", product.ID, domain.ErrAlreadyExists)
		}
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	created, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return created, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	colors := []domain.Color{}
	if err := json.Unmarshal(row.Colors, &colors); err != nil {
		return domain.Product{}, fmt.Errorf("product[%s] colors are not valid: %w", row.ID, err)
	}

	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Category:    row.Category,
		SubCategory: row.SubCategory,
		Colors:      colors,
		Sizes:       nonNil(row.Sizes),
		Tags:        nonNil(row.Tags),
		CreatedAt:   row.CreatedAt,
	}, nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
