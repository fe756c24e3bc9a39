// internal/domain/cart/cart.go
package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Cart is an ordered list of lines, unique by (kind, id)
type Cart struct {
	lines []Line
}

// New returns an empty cart
func New() *Cart {
	return &Cart{}
}

// AddCatalogItem adds one unit of item, merging with an existing line.
// A merged line keeps the snapshot taken at its first add.
func (c *Cart) AddCatalogItem(item catalog.MenuItem) {
	c.add(CatalogEntry{Item: item})
}

// AddOffer adds one unit of offer, merging with an existing line
func (c *Cart) AddOffer(offer catalog.Offer) {
	c.add(OfferEntry{Offer: offer})
}

func (c *Cart) add(e Entry) {
	if i := c.index(e.Kind(), e.EntryID()); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Entry: e, Quantity: 1})
}

// UpdateQuantity sets the quantity of a line exactly; n <= 0 removes it.
// Unknown lines are ignored.
func (c *Cart) UpdateQuantity(kind Kind, id string, n int) {
	if n <= 0 {
		c.Remove(kind, id)
		return
	}
	if i := c.index(kind, id); i >= 0 {
		c.lines[i].Quantity = n
	}
}

// Remove deletes a line, no-op if absent
func (c *Cart) Remove(kind Kind, id string) {
	i := c.index(kind, id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// LineTotal prices a line from its snapshot
func (c *Cart) LineTotal(l Line) decimal.Decimal {
	return l.Total()
}

// Total sums every line total. It is not rounded; see FormatAmount.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len is the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// ItemCount is the sum of quantities
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Find returns the line for (kind, id)
func (c *Cart) Find(kind Kind, id string) (Line, bool) {
	if i := c.index(kind, id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) index(kind Kind, id string) int {
	for i, l := range c.lines {
		if l.Entry.Kind() == kind && l.Entry.EntryID() == id {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the cart as a plain array of lines
func (c *Cart) MarshalJSON() ([]byte, error) {
	if c.lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.lines)
}

// UnmarshalJSON restores a cart, merging duplicate keys so the
// uniqueness invariant holds even for hand-edited state
func (c *Cart) UnmarshalJSON(b []byte) error {
	var lines []Line
	if err := json.Unmarshal(b, &lines); err != nil {
		return err
	}
	c.lines = nil
	for _, l := range lines {
		if i := c.index(l.Entry.Kind(), l.Entry.EntryID()); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return nil
}

// FormatAmount rounds an amount to two decimals for display
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
