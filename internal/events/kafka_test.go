package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, events.ParseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, events.ParseBrokers(""))
}

func TestKafkaPublisher_Disabled(t *testing.T) {
	p := events.NewKafkaPublisher(nil, "orders", zap.NewNop())

	assert.False(t, p.Enabled())
	require.NoError(t, p.PublishOrderCreated(t.Context(), randomOrder()))
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &recordingWriter{}
	p := events.NewKafkaPublisherWithWriter(writer, zap.NewNop())
	order := randomOrder()

	require.NoError(t, p.PublishOrderCreated(t.Context(), order))

	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	assert.Equal(t, order.OwnerID, string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte("order.created")}}, msg.Headers)

	var got events.OrderCreated
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, events.OrderCreatedType, got.Type)
	assert.Equal(t, order.ID, got.OrderID)
	assert.Equal(t, order.PaymentRef, got.PaymentRef)
	assert.True(t, order.TotalPrice.Amount.Equal(got.Total))
	assert.Equal(t, "EGP", got.Currency)
	assert.Equal(t, order.ShippingAddress, got.Address)
	require.Len(t, got.Items, 1)
	assert.Equal(t, order.Items[0].Quantity, got.Items[0].Quantity)
	assert.True(t, order.OrderedAt.Equal(got.OrderedAt))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("leader not available")}
	p := events.NewKafkaPublisherWithWriter(writer, zap.NewNop())

	err := p.PublishOrderCreated(t.Context(), randomOrder())
	require.ErrorContains(t, err, "leader not available")
}

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	return nil
}

func randomOrder() domain.Order {
	egp := currency.MustParseISO("EGP")

	return domain.Order{
		ID:         uuid.New(),
		OwnerID:    gofakeit.UUID(),
		PaymentRef: "cs_test_" + gofakeit.LetterN(10),
		Items: []domain.OrderItem{{
			ProductID: uuid.New(),
			Name:      gofakeit.ProductName(),
			UnitPrice: domain.NewMoney(decimal.RequireFromString("17.50"), egp),
			Color:     "red",
			Size:      "M",
			Quantity:  2,
		}},
		TotalPrice:      domain.NewMoney(decimal.RequireFromString("35.00"), egp),
		ShippingAddress: domain.Address{Address1: gofakeit.Street(), City: gofakeit.City()},
		OrderedAt:       time.Now().UTC(),
		IsPaid:          true,
	}
}
