package domain

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Metadata flattens the address into the string map echoed back by the
// payment provider.
func (a Address) Metadata() map[string]string {
	return map[string]string{
		"address1":   a.Address1,
		"address2":   a.Address2,
		"city":       a.City,
		"postalCode": a.PostalCode,
	}
}

func AddressFromMetadata(md map[string]string) Address {
	return Address{
		Address1:   md["address1"],
		Address2:   md["address2"],
		City:       md["city"],
		PostalCode: md["postalCode"],
	}
}

type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice Money
	Color     string
	Size      string
	Quantity  int
}

type Order struct {
	ID              uuid.UUID
	OwnerID         string
	PaymentRef      string
	Items           []OrderItem
	TotalPrice      Money
	ShippingAddress Address
	OrderedAt       time.Time
	IsPaid          bool
}

// NewPaidOrder snapshots the cart lines by value; later cart or catalog
// changes do not reach the order.
func NewPaidOrder(ownerID, paymentRef string, cart ExpandedCart, total Money, address Address, now time.Time) Order {
	items := make([]OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	return Order{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		PaymentRef:      paymentRef,
		Items:           items,
		TotalPrice:      total,
		ShippingAddress: address,
		OrderedAt:       now,
		IsPaid:          true,
	}
}
