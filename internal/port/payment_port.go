package port

import (
	"context"

	"github.com/nikolayk812/shop-checkout/internal/domain"
)

type PaymentGateway interface {
	CreateSession(ctx context.Context, req domain.PaymentSessionRequest) (domain.PaymentSession, error)
	// ParseEvent verifies the signature over the raw payload before decoding it.
	ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error)
}

type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
}
