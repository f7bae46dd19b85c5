package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

var egp = currency.MustParseISO("EGP")

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_shop.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: egp,
	}
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:          uuid.New(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       randomMoney(),
		Category:    gofakeit.ProductCategory(),
		SubCategory: gofakeit.Word(),
		Colors: []domain.Color{
			{Name: "red", Code: "#ff0000"},
			{Name: "black", Code: "#000000"},
		},
		Sizes: []string{"S", "M", "L"},
		Tags:  []string{gofakeit.Word()},
	}
}

func randomCartItem() domain.CartItem {
	return domain.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Color:     gofakeit.SafeColor(),
		Size:      gofakeit.RandomString([]string{"S", "M", "L"}),
		Quantity:  gofakeit.IntRange(1, 5),
	}
}

func moneyComparers() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
	}
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	opts := append(moneyComparers(), cmpopts.IgnoreFields(domain.Product{}, "CreatedAt"))

	diff := cmp.Diff(expected, actual, opts...)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
