// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
	"github.com/your-org/storefront-backend/internal/infrastructure/messaging"
)

var (
	ErrCustomerInfoRequired = errors.New("customer information is required before payment")
	ErrPaymentAlreadyUsed   = errors.New("payment has already been used for an order")
)

const (
	paymentGuardTTL      = 24 * time.Hour
	notificationDeadline = 15 * time.Second
)

// Carts reads the session's cart
type Carts interface {
	Get(ctx context.Context, session string) (*cart.Cart, error)
}

// Orders turns a confirmed cart snapshot into an order
type Orders interface {
	CreateOrderFromCart(ctx context.Context, session string, c *cart.Cart, customer order.Customer) (*order.Order, error)
}

// Payments confirms a payment with the provider
type Payments interface {
	ConfirmPayment(ctx context.Context, intentID string, amount decimal.Decimal) error
}

// Mailer sends customer notifications
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
	SendOrderStatusUpdate(ctx context.Context, o *order.Order) error
}

// Service runs the cart -> customer info -> payment -> order flow
type Service struct {
	store     kv.Store
	keys      kv.Keys
	carts     Carts
	orders    Orders
	payments  Payments
	mailer    Mailer
	publisher messaging.Publisher
	infoTTL   time.Duration
	log       logrus.FieldLogger
	// async runs post-order notifications; tests make it synchronous
	async func(func())
}

// Deps groups the collaborators of the checkout service
type Deps struct {
	Store     kv.Store
	Keys      kv.Keys
	Carts     Carts
	Orders    Orders
	Payments  Payments
	Mailer    Mailer
	Publisher messaging.Publisher
	InfoTTL   time.Duration
	Log       logrus.FieldLogger
}

// NewService creates a new checkout service
func NewService(d Deps) *Service {
	return &Service{
		store:     d.Store,
		keys:      d.Keys,
		carts:     d.Carts,
		orders:    d.Orders,
		payments:  d.Payments,
		mailer:    d.Mailer,
		publisher: d.Publisher,
		infoTTL:   d.InfoTTL,
		log:       d.Log.WithField("component", "checkout"),
		async:     func(f func()) { go f() },
	}
}

// Confirm validates the customer details for a non-empty cart and keeps
// them for the payment step. An empty cart is rejected before the fields
// are looked at.
func (s *Service) Confirm(ctx context.Context, session string, info CustomerInfo) (*CustomerInfo, error) {
	c, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, order.ErrEmptyCart
	}

	if errs := ValidateCustomerInfo(info); len(errs) > 0 {
		return nil, errs
	}

	info = info.trimmed()
	raw, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode customer info: %w", err)
	}
	if err := s.store.Set(ctx, s.keys.Customer(session), raw, s.infoTTL); err != nil {
		return nil, fmt.Errorf("failed to store customer info: %w", err)
	}
	return &info, nil
}

// CustomerInfo returns the details stored by Confirm
func (s *Service) CustomerInfo(ctx context.Context, session string) (*CustomerInfo, error) {
	raw, err := s.store.Get(ctx, s.keys.Customer(session))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrCustomerInfoRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer info: %w", err)
	}

	var info CustomerInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, ErrCustomerInfoRequired
	}
	return &info, nil
}

// PlaceOrderRequest is the payment step's input
type PlaceOrderRequest struct {
	Payment         PaymentInfo `json:"payment"`
	PaymentIntentID string      `json:"paymentIntentId"`
}

// PlaceOrder validates the card form, confirms payment for the cart total
// and creates the order. Notifications run in the background and never
// affect the result.
func (s *Service) PlaceOrder(ctx context.Context, session string, req PlaceOrderRequest) (*order.Order, error) {
	info, err := s.CustomerInfo(ctx, session)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, order.ErrEmptyCart
	}

	if errs := ValidatePaymentInfo(req.Payment); len(errs) > 0 {
		return nil, errs
	}

	if err := s.payments.ConfirmPayment(ctx, req.PaymentIntentID, c.Total()); err != nil {
		return nil, err
	}

	guard := ""
	if req.PaymentIntentID != "" {
		guard = s.keys.PaymentIntent(req.PaymentIntentID)
		ok, err := s.store.SetNX(ctx, guard, []byte(session), paymentGuardTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve payment: %w", err)
		}
		if !ok {
			return nil, ErrPaymentAlreadyUsed
		}
	}

	// c is the cart the payment was confirmed for; edits made meanwhile are not ordered
	o, err := s.orders.CreateOrderFromCart(ctx, session, c, order.Customer{
		FullName: info.FullName,
		Email:    info.Email,
		Phone:    info.Phone,
		Address:  info.Address,
	})
	if err != nil {
		if guard != "" {
			if delErr := s.store.Delete(ctx, guard); delErr != nil {
				s.log.WithError(delErr).Warn("failed to release payment guard")
			}
		}
		return nil, err
	}

	if err := s.store.Delete(ctx, s.keys.Customer(session)); err != nil {
		s.log.WithError(err).WithField("session_id", session).Warn("failed to clear customer info")
	}

	s.async(func() { s.notify(messaging.EventOrderCreated, o) })
	return o, nil
}

// OrderStatusChanged announces an admin status change in the background
func (s *Service) OrderStatusChanged(_ context.Context, o *order.Order) {
	snapshot := *o
	s.async(func() { s.notify(messaging.EventOrderStatusChanged, &snapshot) })
}

// notify publishes the order event and emails the customer; failures are logged only
func (s *Service) notify(event string, o *order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), notificationDeadline)
	defer cancel()

	entry := s.log.WithFields(logrus.Fields{"order_id": o.ID, "event": event})
	if s.publisher != nil {
		if err := s.publisher.PublishOrderEvent(ctx, event, o); err != nil {
			entry.WithError(err).Error("failed to publish order event")
		}
	}
	if s.mailer == nil {
		return
	}

	var err error
	if event == messaging.EventOrderCreated {
		err = s.mailer.SendOrderConfirmation(ctx, o)
	} else {
		err = s.mailer.SendOrderStatusUpdate(ctx, o)
	}
	if err != nil {
		entry.WithError(err).Error("failed to send order email")
	}
}
