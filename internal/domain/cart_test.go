package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCart_AddItem(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	tests := []struct {
		name      string
		adds      []domain.CartItem
		wantItems []domain.CartItem
		wantTotal int
		wantError string
	}{
		{
			name:      "add new item: ok",
			adds:      []domain.CartItem{{ProductID: productA, Color: "red", Size: "M", Quantity: 2}},
			wantItems: []domain.CartItem{{ProductID: productA, Color: "red", Size: "M", Quantity: 2}},
			wantTotal: 2,
		},
		{
			name: "same product, color and size merge",
			adds: []domain.CartItem{
				{ProductID: productA, Color: "red", Size: "M", Quantity: 2},
				{ProductID: productA, Color: "red", Size: "M", Quantity: 1},
			},
			wantItems: []domain.CartItem{{ProductID: productA, Color: "red", Size: "M", Quantity: 3}},
			wantTotal: 3,
		},
		{
			name: "different size is a separate item",
			adds: []domain.CartItem{
				{ProductID: productA, Color: "red", Size: "M", Quantity: 1},
				{ProductID: productA, Color: "red", Size: "L", Quantity: 1},
				{ProductID: productB, Color: "red", Size: "M", Quantity: 4},
			},
			wantItems: []domain.CartItem{
				{ProductID: productA, Color: "red", Size: "M", Quantity: 1},
				{ProductID: productA, Color: "red", Size: "L", Quantity: 1},
				{ProductID: productB, Color: "red", Size: "M", Quantity: 4},
			},
			wantTotal: 6,
		},
		{
			name:      "zero quantity: error",
			adds:      []domain.CartItem{{ProductID: productA, Color: "red", Size: "M", Quantity: 0}},
			wantError: "invalid data: quantity: must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := domain.NewCart(gofakeit.UUID())

			var err error
			for _, add := range tt.adds {
				_, err = cart.AddItem(add.ProductID, add.Color, add.Size, add.Quantity)
				if err != nil {
					break
				}
			}
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Empty(t, cart.Items)
				return
			}
			require.NoError(t, err)

			diff := cmp.Diff(tt.wantItems, cart.Items, cmpopts.IgnoreFields(domain.CartItem{}, "ID"))
			assert.Empty(t, diff)
			assert.Equal(t, tt.wantTotal, cart.TotalQuantity)
		})
	}
}

func TestCart_Scenario(t *testing.T) {
	productA := uuid.New()
	cart := domain.NewCart(gofakeit.UUID())

	item, err := cart.AddItem(productA, "red", "M", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalQuantity)

	merged, err := cart.AddItem(productA, "red", "M", 1)
	require.NoError(t, err)
	assert.Equal(t, item.ID, merged.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalQuantity)

	require.NoError(t, cart.DecreaseItem(item.ID))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalQuantity)
}

func TestCart_DecreaseItem(t *testing.T) {
	t.Run("quantity one removes the item", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())
		item, err := cart.AddItem(uuid.New(), "blue", "S", 1)
		require.NoError(t, err)

		require.NoError(t, cart.DecreaseItem(item.ID))

		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalQuantity)
	})

	t.Run("unknown item: not found, cart unchanged", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())
		_, err := cart.AddItem(uuid.New(), "blue", "S", 3)
		require.NoError(t, err)
		before := cart

		err = cart.DecreaseItem(uuid.New())

		require.ErrorIs(t, err, domain.ErrCartItemNotFound)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, before, cart)
		assert.Equal(t, 3, cart.TotalQuantity)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("removes the full quantity", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())
		keep, err := cart.AddItem(uuid.New(), "green", "L", 2)
		require.NoError(t, err)
		drop, err := cart.AddItem(uuid.New(), "green", "L", 5)
		require.NoError(t, err)

		require.NoError(t, cart.RemoveItem(drop.ID))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, keep.ID, cart.Items[0].ID)
		assert.Equal(t, 2, cart.TotalQuantity)
	})

	t.Run("unknown item: could not delete", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())
		_, err := cart.AddItem(uuid.New(), "green", "L", 2)
		require.NoError(t, err)
		before := cart

		err = cart.RemoveItem(uuid.New())

		require.ErrorIs(t, err, domain.ErrCartItemNotDeleted)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "could not delete the item")
		assert.Equal(t, before, cart)
	})
}

func TestCart_AddItem_QuantityLimit(t *testing.T) {
	const limitMessage = "invalid data: quantity: cart cannot hold more than 2147483647 items"

	t.Run("single add above the limit", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())

		_, err := cart.AddItem(uuid.New(), "red", "M", 4294967297)

		require.EqualError(t, err, limitMessage)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalQuantity)
	})

	t.Run("merge past the limit leaves the item as is", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())
		productID := uuid.New()
		item, err := cart.AddItem(productID, "red", "M", domain.MaxCartQuantity-1)
		require.NoError(t, err)
		before := cart

		_, err = cart.AddItem(productID, "red", "M", 2)

		require.EqualError(t, err, limitMessage)
		assert.Equal(t, before, cart)
		assert.Equal(t, domain.MaxCartQuantity-1, cart.Items[0].Quantity)
		assert.Equal(t, item.ID, cart.Items[0].ID)
	})

	t.Run("total past the limit across items", func(t *testing.T) {
		cart := domain.NewCart(gofakeit.UUID())
		_, err := cart.AddItem(uuid.New(), "red", "M", domain.MaxCartQuantity-5)
		require.NoError(t, err)

		_, err = cart.AddItem(uuid.New(), "blue", "L", 6)
		require.ErrorIs(t, err, domain.ErrValidation)

		_, err = cart.AddItem(uuid.New(), "blue", "L", 5)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxCartQuantity, cart.TotalQuantity)
	})
}

func TestCart_Clear(t *testing.T) {
	cart := domain.NewCart(gofakeit.UUID())
	for range gofakeit.IntRange(0, 5) {
		_, err := cart.AddItem(uuid.New(), gofakeit.Color(), "M", gofakeit.IntRange(1, 9))
		require.NoError(t, err)
	}

	cart.Clear()

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
}

func TestCart_TotalQuantityInvariant(t *testing.T) {
	products := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	sizes := []string{"S", "M"}
	cart := domain.NewCart(gofakeit.UUID())

	for step := range 500 {
		switch op := gofakeit.IntRange(0, 3); {
		case op <= 1 || cart.IsEmpty():
			_, err := cart.AddItem(products[gofakeit.IntRange(0, 2)], "red", sizes[gofakeit.IntRange(0, 1)], gofakeit.IntRange(1, 3))
			require.NoError(t, err)
		case op == 2:
			item := cart.Items[gofakeit.IntRange(0, len(cart.Items)-1)]
			require.NoError(t, cart.DecreaseItem(item.ID))
		default:
			item := cart.Items[gofakeit.IntRange(0, len(cart.Items)-1)]
			require.NoError(t, cart.RemoveItem(item.ID))
		}

		sum := 0
		keys := make(map[string]struct{}, len(cart.Items))
		for _, item := range cart.Items {
			require.Positive(t, item.Quantity)
			sum += item.Quantity

			key := item.ProductID.String() + "|" + item.Color + "|" + item.Size
			_, dup := keys[key]
			require.False(t, dup, "step %d: duplicate item key %s", step, key)
			keys[key] = struct{}{}
		}
		require.Equal(t, sum, cart.TotalQuantity, "step %d", step)
	}
}

func TestExpandedCart_TotalPrice(t *testing.T) {
	egp := currency.MustParseISO("EGP")

	t.Run("sums price times quantity", func(t *testing.T) {
		cart := domain.ExpandedCart{
			Lines: []domain.CartLine{
				{CartItem: domain.CartItem{Quantity: 2}, Product: domain.Product{Price: domain.NewMoney(decimal.NewFromInt(10), egp)}},
				{CartItem: domain.CartItem{Quantity: 3}, Product: domain.Product{Price: domain.NewMoney(decimal.NewFromInt(5), egp)}},
			},
		}

		total, err := cart.TotalPrice(egp)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(35).Equal(total.Amount), "got %s", total.Amount)
		assert.Equal(t, egp, total.Currency)
	})

	t.Run("empty cart is zero", func(t *testing.T) {
		total, err := domain.ExpandedCart{}.TotalPrice(egp)
		require.NoError(t, err)
		assert.True(t, total.Amount.IsZero())
	})

	t.Run("foreign currency: error", func(t *testing.T) {
		cart := domain.ExpandedCart{
			Lines: []domain.CartLine{
				{CartItem: domain.CartItem{Quantity: 1}, Product: domain.Product{Price: domain.NewMoney(decimal.NewFromInt(1), currency.USD)}},
			},
		}

		_, err := cart.TotalPrice(egp)
		require.Error(t, err)
	})
}
