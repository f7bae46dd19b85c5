package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// PaymentOutcome says what HandlePaymentEvent did with an event.
type PaymentOutcome string

const (
	OutcomeIgnored   PaymentOutcome = "ignored"
	OutcomeCreated   PaymentOutcome = "created"
	OutcomeDuplicate PaymentOutcome = "duplicate"
	OutcomeDropped   PaymentOutcome = "dropped"
	OutcomeFailed    PaymentOutcome = "failed"
)

type CheckoutConfig struct {
	Currency   currency.Unit
	SuccessURL string
	CancelURL  string
}

type CheckoutService struct {
	carts     *CartService
	users     port.UserRepository
	orders    port.OrderRepository
	uow       port.UnitOfWork
	gateway   port.PaymentGateway
	publisher port.OrderEventPublisher
	logger    *zap.Logger
	cfg       CheckoutConfig

	now func() time.Time
}

func NewCheckoutService(
	carts *CartService,
	users port.UserRepository,
	orders port.OrderRepository,
	uow port.UnitOfWork,
	gateway port.PaymentGateway,
	publisher port.OrderEventPublisher,
	logger *zap.Logger,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		users:     users,
		orders:    orders,
		uow:       uow,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// InitiateCheckout opens a hosted payment session for the owner's cart.
// Neither the cart nor any order is touched until the payment is confirmed.
func (s *CheckoutService) InitiateCheckout(ctx context.Context, ownerID string, address domain.Address) (domain.PaymentSession, error) {
	user, err := s.users.GetUser(ctx, ownerID)
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("users.GetUser: %w", err)
	}

	cart, err := s.carts.GetExpanded(ctx, ownerID)
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("carts.GetExpanded: %w", err)
	}

	if cart.IsEmpty() {
		return domain.PaymentSession{}, fmt.Errorf("cart[%s]: %w", cart.ID, domain.ErrEmptyCart)
	}

	total, err := cart.TotalPrice(s.cfg.Currency)
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("cart.TotalPrice: %w", err)
	}

	amount, err := total.MinorUnits()
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("total.MinorUnits: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, domain.PaymentSessionRequest{
		Description:    fmt.Sprintf("Order of %d item(s) for %s", cart.TotalQuantity, user.Name),
		Amount:         amount,
		Currency:       s.cfg.Currency,
		PayerEmail:     user.Email,
		CorrelationRef: cart.ID.String(),
		Metadata:       address.Metadata(),
		SuccessURL:     s.cfg.SuccessURL,
		CancelURL:      s.cfg.CancelURL,
	})
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("%w: gateway.CreateSession: %w", domain.ErrPayment, err)
	}

	s.logger.Info("checkout session created",
		zap.String("owner_id", ownerID),
		zap.Stringer("cart_id", cart.ID),
		zap.String("payment_ref", session.ID),
		zap.Stringer("total", total))

	return session, nil
}

// HandlePaymentEvent turns a completed payment into a paid order and clears
// the paid cart in one transaction. Orders are keyed by payment reference, so
// a redelivered event is detected and skipped. Missing cart, user or product
// is terminal for the event and returns no error; any other error should make
// the provider redeliver.
func (s *CheckoutService) HandlePaymentEvent(ctx context.Context, event domain.PaymentEvent) (PaymentOutcome, error) {
	if event.Type != domain.PaymentEventCompleted {
		s.logger.Debug("payment event ignored", zap.String("event_id", event.ID), zap.String("type", string(event.Type)))
		return OutcomeIgnored, nil
	}

	logger := s.logger.With(
		zap.String("event_id", event.ID),
		zap.String("payment_ref", paymentRef(event)),
		zap.String("cart_id", event.CorrelationRef))

	cartID, err := uuid.Parse(event.CorrelationRef)
	if err != nil {
		logger.Warn("payment event without a valid cart reference", zap.Error(err))
		return OutcomeDropped, nil
	}

	cur := event.Currency
	if cur == (currency.Unit{}) {
		cur = s.cfg.Currency
	}
	total := domain.MoneyFromMinorUnits(event.AmountTotal, cur)
	address := domain.AddressFromMetadata(event.Metadata)

	user, err := s.users.GetUserByEmail(ctx, event.PayerEmail)
	if err != nil {
		return s.failOrDrop(logger, fmt.Errorf("users.GetUserByEmail: %w", err))
	}

	var order domain.Order

	err = s.uow.Do(ctx, func(repos port.TxRepositories) error {
		cart, err := repos.Carts.GetCartByID(ctx, cartID)
		if err != nil {
			return fmt.Errorf("carts.GetCartByID: %w", err)
		}

		if cart.OwnerID != user.ID {
			logger.Warn("payer is not the cart owner",
				zap.String("owner_id", cart.OwnerID),
				zap.String("payer_id", user.ID))
		}

		expanded, err := s.carts.Expand(ctx, cart)
		if err != nil {
			return fmt.Errorf("carts.Expand: %w", err)
		}

		order, err = repos.Orders.CreateOrder(ctx,
			domain.NewPaidOrder(user.ID, paymentRef(event), expanded, total, address, s.now()))
		if err != nil {
			return fmt.Errorf("orders.CreateOrder: %w", err)
		}

		cart.Clear()
		if _, err := repos.Carts.SaveCart(ctx, cart); err != nil {
			return fmt.Errorf("carts.SaveCart: %w", err)
		}

		return nil
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		logger.Info("payment event already processed")
		return OutcomeDuplicate, nil
	}
	if err != nil {
		return s.failOrDrop(logger, fmt.Errorf("uow.Do: %w", err))
	}

	logger.Info("order created",
		zap.Stringer("order_id", order.ID),
		zap.String("owner_id", order.OwnerID),
		zap.Stringer("total", order.TotalPrice))

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		logger.Error("failed to publish order created", zap.Stringer("order_id", order.ID), zap.Error(err))
	}

	return OutcomeCreated, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, ownerID, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *CheckoutService) failOrDrop(logger *zap.Logger, err error) (PaymentOutcome, error) {
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("payment event dropped", zap.Error(err))
		return OutcomeDropped, nil
	}

	logger.Error("payment event failed", zap.Error(err))
	return OutcomeFailed, err
}

func paymentRef(event domain.PaymentEvent) string {
	if event.SessionID != "" {
		return event.SessionID
	}
	return event.ID
}
