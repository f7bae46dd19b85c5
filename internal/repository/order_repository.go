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
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q *db.Queries
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: db.New(pool)}
}

// orderItemRecord is the JSONB shape of an order line.
type orderItemRecord struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OwnerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}
	if order.PaymentRef == "" {
		return domain.Order{}, fmt.Errorf("paymentRef is empty")
	}

	itemsJSON, err := json.Marshal(mapOrderItemsToRecords(order.Items))
	if err != nil {
		return domain.Order{}, fmt.Errorf("json.Marshal items: %w", err)
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("json.Marshal address: %w", err)
	}

	row, err := r.q.CreateOrder(ctx, db.CreateOrderParams{
		ID:              order.ID,
		OwnerID:         order.OwnerID,
		PaymentRef:      order.PaymentRef,
		Items:           itemsJSON,
		TotalAmount:     order.TotalPrice.Amount,
		TotalCurrency:   order.TotalPrice.Currency.String(),
		ShippingAddress: addressJSON,
		IsPaid:          order.IsPaid,
		OrderedAt:       order.OrderedAt,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order for payment[%s]: %w", order.PaymentRef, domain.ErrAlreadyExists)
		}
		return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
	}

	created, err := mapOrderToDomain(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return created, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	if ownerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}

	row, err := r.q.GetOrder(ctx, db.GetOrderParams{
		ID:      orderID,
		OwnerID: ownerID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	order, err := mapOrderToDomain(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.ListOrdersByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByOwner: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func mapOrderItemsToRecords(items []domain.OrderItem) []orderItemRecord {
	records := make([]orderItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, orderItemRecord{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice.Amount,
			Currency:  item.UnitPrice.Currency.String(),
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return records
}

func mapOrderToDomain(row db.Order) (domain.Order, error) {
	totalCurrency, err := currency.ParseISO(row.TotalCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.TotalCurrency, err)
	}

	var records []orderItemRecord
	if err := json.Unmarshal(row.Items, &records); err != nil {
		return domain.Order{}, fmt.Errorf("order[%s] items are not valid: %w", row.ID, err)
	}

	items := make([]domain.OrderItem, 0, len(records))
	for _, rec := range records {
		itemCurrency, err := currency.ParseISO(rec.Currency)
		if err != nil {
			return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", rec.Currency, err)
		}

		items = append(items, domain.OrderItem{
			ProductID: rec.ProductID,
			Name:      rec.Name,
			UnitPrice: domain.NewMoney(rec.Price, itemCurrency),
			Color:     rec.Color,
			Size:      rec.Size,
			Quantity:  rec.Quantity,
		})
	}

	var address domain.Address
	if err := json.Unmarshal(row.ShippingAddress, &address); err != nil {
		return domain.Order{}, fmt.Errorf("order[%s] address is not valid: %w", row.ID, err)
	}

	return domain.Order{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		PaymentRef:      row.PaymentRef,
		Items:           items,
		TotalPrice:      domain.NewMoney(row.TotalAmount, totalCurrency),
		ShippingAddress: address,
		OrderedAt:       row.OrderedAt,
		IsPaid:          row.IsPaid,
	}, nil
}
