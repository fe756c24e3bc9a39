// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrOfferInactive = errors.New("offer is not active")
)

// Catalog resolves ids to the current catalog entries
type Catalog interface {
	GetMenuItem(ctx context.Context, id string) (*catalog.MenuItem, error)
	GetOffer(ctx context.Context, id string) (*catalog.Offer, error)
}

// Service binds the cart engine to a session's persisted state
type Service struct {
	store   kv.Store
	catalog Catalog
	keys    kv.Keys
	ttl     time.Duration
	log     logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(store kv.Store, cat Catalog, keys kv.Keys, ttl time.Duration, log logrus.FieldLogger) *Service {
	return &Service{
		store:   store,
		catalog: cat,
		keys:    keys,
		ttl:     ttl,
		log:     log.WithField("component", "cart"),
	}
}

// Get loads the session's cart; a missing cart is empty
func (s *Service) Get(ctx context.Context, session string) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.keys.Cart(session))
	if errors.Is(err, kv.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := New()
	if err := json.Unmarshal(raw, c); err != nil {
		s.log.WithError(err).WithField("session_id", session).Warn("discarding unreadable cart")
		return New(), nil
	}
	return c, nil
}

// AddItem resolves (kind, id) against the catalog and adds one unit
func (s *Service) AddItem(ctx context.Context, session string, kind Kind, id string) (*Cart, error) {
	c, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindMenuItem:
		item, err := s.catalog.GetMenuItem(ctx, id)
		if err != nil {
			return nil, lookupErr(err)
		}
		c.AddCatalogItem(*item)
	case KindOffer:
		// Lines already in the cart stay orderable after deactivation;
		// only new adds are refused.
		if line, inCart := c.Find(KindOffer, id); inCart {
			c.UpdateQuantity(KindOffer, id, line.Quantity+1)
			break
		}
		offer, err := s.catalog.GetOffer(ctx, id)
		if err != nil {
			return nil, lookupErr(err)
		}
		if !offer.Active {
			return nil, ErrOfferInactive
		}
		c.AddOffer(*offer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err := s.save(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity overwrites a line's quantity; n <= 0 removes it
func (s *Service) UpdateQuantity(ctx context.Context, session string, kind Kind, id string, n int) (*Cart, error) {
	return s.mutate(ctx, session, func(c *Cart) { c.UpdateQuantity(kind, id, n) })
}

// RemoveItem removes a line, no-op if absent
func (s *Service) RemoveItem(ctx context.Context, session string, kind Kind, id string) (*Cart, error) {
	return s.mutate(ctx, session, func(c *Cart) { c.Remove(kind, id) })
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, session string) error {
	if err := s.store.Delete(ctx, s.keys.Cart(session)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, session string, fn func(*Cart)) (*Cart, error) {
	c, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	fn(c)
	if err := s.save(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, session string, c *Cart) error {
	if c.Len() == 0 {
		return s.Clear(ctx, session)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(ctx, s.keys.Cart(session), raw, s.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func lookupErr(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}
