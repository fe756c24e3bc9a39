// internal/domain/order/service.go
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrNoStatusChange = errors.New("no status given")
)

// Carts is the part of the cart service order creation reads from
type Carts interface {
	Get(ctx context.Context, session string) (*cart.Cart, error)
}

// StatusListener is notified after an admin changes an order's status
type StatusListener interface {
	OrderStatusChanged(ctx context.Context, o *Order)
}

// Service handles order creation and lookup
type Service struct {
	store    kv.Store
	carts    Carts
	keys     kv.Keys
	ids      *IDGenerator
	now      func() time.Time
	listener StatusListener
	log      logrus.FieldLogger
}

// NewService creates a new order service
func NewService(store kv.Store, carts Carts, keys kv.Keys, log logrus.FieldLogger) *Service {
	return &Service{
		store: store,
		carts: carts,
		keys:  keys,
		ids:   NewIDGenerator(),
		now:   time.Now,
		log:   log.WithField("component", "order"),
	}
}

// SetStatusListener registers the receiver of status change notifications
func (s *Service) SetStatusListener(l StatusListener) {
	s.listener = l
}

// maxIDAttempts bounds retries when another writer already holds an order id
const maxIDAttempts = 5

// CreateOrder turns the session's current cart into a Paid/New order.
// Callers must have validated the customer and confirmed payment.
func (s *Service) CreateOrder(ctx context.Context, session string, customer Customer) (*Order, error) {
	c, err := s.carts.Get(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return s.CreateOrderFromCart(ctx, session, c, customer)
}

// CreateOrderFromCart snapshots c, the cart payment was confirmed for, into
// a Paid/New order. The order record, both order indexes and the removal of
// the session's cart are committed together. The record is written only if
// its id is unused; on a clash the next id is tried.
func (s *Service) CreateOrderFromCart(ctx context.Context, session string, c *cart.Cart, customer Customer) (*Order, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		CustomerName:  customer.FullName,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address:       customer.Address,
		Items:         c.Lines(),
		TotalAmount:   c.Total(),
		PaymentStatus: PaymentStatusPaid,
		OrderStatus:   OrderStatusNew,
		CreatedAt:     s.now().UTC(),
	}

	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		o.ID = s.ids.Next()
		err = s.commit(ctx, session, o)
		if !errors.Is(err, kv.ErrConflict) {
			break
		}
		s.log.WithFields(logrus.Fields{
			"order_id": o.ID,
			"attempt":  attempt,
		}).Warn("order id already taken, retrying")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id":   o.ID,
		"session_id": session,
		"total":      cart.FormatAmount(o.TotalAmount),
		"items":      len(o.Items),
	}).Info("order created")

	return o, nil
}

func (s *Service) commit(ctx context.Context, session string, o *Order) error {
	raw, err := json.Marshal(record{Order: *o, SessionID: session})
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}
	return s.store.Commit(ctx,
		kv.Create(s.keys.Order(o.ID), raw, 0),
		kv.Push(s.keys.SessionOrders(session), []byte(o.ID)),
		kv.Push(s.keys.AllOrders(), []byte(o.ID)),
		kv.Delete(s.keys.Cart(session)),
	)
}

// ListSessionOrders returns the session's orders, most recent first
func (s *Service) ListSessionOrders(ctx context.Context, session string) ([]Order, error) {
	return s.listIndex(ctx, s.keys.SessionOrders(session))
}

// ListAllOrders returns every order, most recent first
func (s *Service) ListAllOrders(ctx context.Context) ([]Order, error) {
	return s.listIndex(ctx, s.keys.AllOrders())
}

// GetSessionOrder returns an order only if it was placed by session
func (s *Service) GetSessionOrder(ctx context.Context, session, id string) (*Order, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.SessionID != session {
		return nil, ErrOrderNotFound
	}
	return &rec.Order, nil
}

// GetOrder returns any order by id
func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec.Order, nil
}

// StatusUpdate carries the statuses an admin wants to set; nil keeps the current value
type StatusUpdate struct {
	OrderStatus   *OrderStatus   `json:"orderStatus"`
	PaymentStatus *PaymentStatus `json:"paymentStatus"`
}

// UpdateStatus sets either status to any valid value; there is no state machine
func (s *Service) UpdateStatus(ctx context.Context, id string, upd StatusUpdate) (*Order, error) {
	if upd.OrderStatus == nil && upd.PaymentStatus == nil {
		return nil, ErrNoStatusChange
	}
	if upd.OrderStatus != nil && !upd.OrderStatus.Valid() {
		return nil, fmt.Errorf("%w: order status %q", ErrInvalidStatus, *upd.OrderStatus)
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: payment status %q", ErrInvalidStatus, *upd.PaymentStatus)
	}

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.OrderStatus != nil {
		rec.OrderStatus = *upd.OrderStatus
	}
	if upd.PaymentStatus != nil {
		rec.PaymentStatus = *upd.PaymentStatus
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}
	if err := s.store.Set(ctx, s.keys.Order(id), raw, 0); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id":       id,
		"order_status":   rec.OrderStatus,
		"payment_status": rec.PaymentStatus,
	}).Info("order status updated")

	if s.listener != nil {
		s.listener.OrderStatusChanged(ctx, &rec.Order)
	}
	return &rec.Order, nil
}

func (s *Service) listIndex(ctx context.Context, key string) ([]Order, error) {
	ids, err := s.store.List(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]Order, 0, len(ids))
	for _, id := range ids {
		rec, err := s.load(ctx, string(id))
		if errors.Is(err, ErrOrderNotFound) {
			s.log.WithField("order_id", string(id)).Warn("order index points at a missing record")
			continue
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, rec.Order)
	}
	return orders, nil
}

func (s *Service) load(ctx context.Context, id string) (*record, error) {
	raw, err := s.store.Get(ctx, s.keys.Order(id))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", id, err)
	}
	return &rec, nil
}
