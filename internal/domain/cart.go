package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MaxCartQuantity bounds item and cart totals to what the store persists.
const MaxCartQuantity = math.MaxInt32

type Cart struct {
	ID            uuid.UUID
	OwnerID       string
	Items         []CartItem
	TotalQuantity int

	// Version is bumped by every successful save and guards concurrent writers.
	Version int64
}

type CartItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

func NewCart(ownerID string) Cart {
	return Cart{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Items:   []CartItem{},
	}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) FindItem(itemID uuid.UUID) (CartItem, bool) {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return CartItem{}, false
	}
	return c.Items[idx], true
}

// AddItem merges quantity into the item matching (productID, color, size)
// or appends a new item.
func (c *Cart) AddItem(productID uuid.UUID, color, size string, quantity int) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, NewValidationError("quantity", "must be a positive integer")
	}
	if quantity > MaxCartQuantity-c.TotalQuantity {
		return CartItem{}, NewValidationError("quantity", fmt.Sprintf("cart cannot hold more than %d items", MaxCartQuantity))
	}

	var added CartItem
	c.update(func(items []CartItem) []CartItem {
		for i := range items {
			if items[i].ProductID == productID && items[i].Color == color && items[i].Size == size {
				items[i].Quantity += quantity
				added = items[i]
				return items
			}
		}

		added = CartItem{
			ID:        uuid.New(),
			ProductID: productID,
			Color:     color,
			Size:      size,
			Quantity:  quantity,
		}
		return append(items, added)
	})

	return added, nil
}

// DecreaseItem takes one unit off the item and drops it when it reaches zero.
func (c *Cart) DecreaseItem(itemID uuid.UUID) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("decrease %s: %w", itemID, ErrCartItemNotFound)
	}

	c.update(func(items []CartItem) []CartItem {
		if items[idx].Quantity == 1 {
			return append(items[:idx], items[idx+1:]...)
		}
		items[idx].Quantity--
		return items
	})

	return nil
}

func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("item %s: %w", itemID, ErrCartItemNotDeleted)
	}

	c.update(func(items []CartItem) []CartItem {
		return append(items[:idx], items[idx+1:]...)
	})

	return nil
}

func (c *Cart) Clear() {
	c.update(func([]CartItem) []CartItem {
		return []CartItem{}
	})
}

// update is the only place that writes Items, so TotalQuantity always
// equals the sum of item quantities.
func (c *Cart) update(fn func(items []CartItem) []CartItem) {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)

	c.Items = fn(items)
	c.TotalQuantity = sumQuantity(c.Items)
}

func (c Cart) indexOf(itemID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func sumQuantity(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// CartLine is a cart item joined with its product record.
type CartLine struct {
	CartItem
	Product Product
}

type ExpandedCart struct {
	Cart
	Lines []CartLine
}

// TotalPrice sums price * quantity over all lines. Every product must be
// priced in cur.
func (c ExpandedCart) TotalPrice(cur currency.Unit) (Money, error) {
	total := decimal.Zero

	for _, line := range c.Lines {
		if line.Product.Price.Currency != cur {
			return Money{}, fmt.Errorf("product[%s] is priced in %s, store currency is %s",
				line.Product.ID, line.Product.Price.Currency, cur)
		}
		total = total.Add(line.Product.Price.Amount.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return NewMoney(total, cur), nil
}
