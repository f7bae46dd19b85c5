package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const OrderCreatedType = "order.created"

type OrderCreated struct {
	Type       string             `json:"type"`
	OrderID    uuid.UUID          `json:"orderId"`
	OwnerID    string             `json:"ownerId"`
	PaymentRef string             `json:"paymentRef"`
	Total      decimal.Decimal    `json:"total"`
	Currency   string             `json:"currency"`
	Items      []OrderCreatedItem `json:"items"`
	Address    domain.Address     `json:"shippingAddress"`
	OrderedAt  time.Time          `json:"orderedAt"`
}

type OrderCreatedItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewKafkaPublisher returns a publisher that drops events when no brokers
// are configured.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	p := &KafkaPublisher{logger: logger}

	if len(brokers) > 0 {
		p.writer = &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
	}

	return p
}

func newKafkaPublisherWithWriter(writer messageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Enabled() bool {
	return p.writer != nil
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	if !p.Enabled() {
		p.logger.Debug("kafka disabled, order event dropped", zap.Stringer("order_id", order.ID))
		return nil
	}

	msg, err := orderCreatedMessage(order)
	if err != nil {
		return fmt.Errorf("orderCreatedMessage: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}

// orderCreatedMessage keys the message by owner so one owner's orders stay
// on one partition.
func orderCreatedMessage(order domain.Order) (kafka.Message, error) {
	items := make([]OrderCreatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderCreatedItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Amount,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	data, err := json.Marshal(OrderCreated{
		Type:       OrderCreatedType,
		OrderID:    order.ID,
		OwnerID:    order.OwnerID,
		PaymentRef: order.PaymentRef,
		Total:      order.TotalPrice.Amount,
		Currency:   order.TotalPrice.Currency.String(),
		Items:      items,
		Address:    order.ShippingAddress,
		OrderedAt:  order.OrderedAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return kafka.Message{
		Key:   []byte(order.OwnerID),
		Value: data,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(OrderCreatedType)},
		},
	}, nil
}
