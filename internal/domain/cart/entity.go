// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Kind distinguishes the two sorts of cart line
type Kind string

const (
	KindMenuItem Kind = "menu_item"
	KindOffer    Kind = "offer"
)

// ErrUnknownKind is returned when a kind string is neither menu_item nor offer
var ErrUnknownKind = errors.New("unknown cart item kind")

// ParseKind converts a path or body value into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMenuItem, KindOffer:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Entry is what a cart line refers to. It is implemented only by
// CatalogEntry and OfferEntry.
type Entry interface {
	Kind() Kind
	EntryID() string
	Title() string
	UnitPrice() decimal.Decimal
	sealed()
}

// CatalogEntry is a snapshot of a menu item taken when it was added
type CatalogEntry struct {
	Item catalog.MenuItem
}

func (e CatalogEntry) Kind() Kind                 { return KindMenuItem }
func (e CatalogEntry) EntryID() string            { return e.Item.ID }
func (e CatalogEntry) Title() string              { return e.Item.Name }
func (e CatalogEntry) UnitPrice() decimal.Decimal { return e.Item.Price }
func (CatalogEntry) sealed()                      {}

// OfferEntry is a snapshot of an offer taken when it was added
type OfferEntry struct {
	Offer catalog.Offer
}

func (e OfferEntry) Kind() Kind                 { return KindOffer }
func (e OfferEntry) EntryID() string            { return e.Offer.ID }
func (e OfferEntry) Title() string              { return e.Offer.Title }
func (e OfferEntry) UnitPrice() decimal.Decimal { return e.Offer.EffectivePrice() }
func (OfferEntry) sealed()                      {}

// Line is one cart row. Quantity is always at least 1.
type Line struct {
	Entry    Entry
	Quantity int
}

// Total is unit price times quantity, unrounded
func (l Line) Total() decimal.Decimal {
	return l.Entry.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// wireLine is the persisted shape: exactly one of MenuItem and Offer is set
type wireLine struct {
	MenuItem *catalog.MenuItem `json:"menuItem,omitempty"`
	Offer    *catalog.Offer    `json:"offer,omitempty"`
	Quantity int               `json:"quantity"`
}

// MarshalJSON encodes the line as {menuItem|offer, quantity}
func (l Line) MarshalJSON() ([]byte, error) {
	w := wireLine{Quantity: l.Quantity}
	switch e := l.Entry.(type) {
	case CatalogEntry:
		item := e.Item
		w.MenuItem = &item
	case OfferEntry:
		offer := e.Offer
		w.Offer = &offer
	default:
		return nil, fmt.Errorf("cart line has no entry")
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a line and rejects both-set, neither-set and
// non-positive quantities
func (l *Line) UnmarshalJSON(b []byte) error {
	var w wireLine
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	switch {
	case w.MenuItem != nil && w.Offer != nil:
		return fmt.Errorf("cart line has both menuItem and offer")
	case w.MenuItem != nil:
		l.Entry = CatalogEntry{Item: *w.MenuItem}
	case w.Offer != nil:
		l.Entry = OfferEntry{Offer: *w.Offer}
	default:
		return fmt.Errorf("cart line has neither menuItem nor offer")
	}

	if w.Quantity < 1 {
		return fmt.Errorf("cart line quantity must be positive, got %d", w.Quantity)
	}
	l.Quantity = w.Quantity
	return nil
}
