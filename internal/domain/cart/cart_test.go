package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pizza() catalog.MenuItem {
	return catalog.MenuItem{ID: "1", Name: "Margherita Pizza", Price: dec("10.00")}
}

func pizzaWeek() catalog.Offer {
	return catalog.Offer{ID: "1", Title: "50% OFF Pizza Week", OriginalPrice: dec("20.00"), Discount: dec("50"), Active: true}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestCart_AddMergesByKindAndID(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())
	c.AddCatalogItem(pizza())
	c.AddOffer(pizzaWeek())

	// Menu item "1" and offer "1" share an id but are distinct lines
	require.Equal(t, 2, c.Len())
	line, ok := c.Find(KindMenuItem, "1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)

	line, ok = c.Find(KindOffer, "1")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_Totals(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())
	c.AddCatalogItem(pizza())
	c.AddOffer(pizzaWeek())

	assertDec(t, "30", c.Total())

	for _, l := range c.Lines() {
		switch l.Entry.Kind() {
		case KindMenuItem:
			assertDec(t, "20", c.LineTotal(l))
		case KindOffer:
			assertDec(t, "10", c.LineTotal(l))
		}
	}
}

func TestCart_EmptyTotalIsZero(t *testing.T) {
	assertDec(t, "0", New().Total())
	assert.Equal(t, "0.00", FormatAmount(New().Total()))
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())

	c.UpdateQuantity(KindMenuItem, "1", 5)
	line, _ := c.Find(KindMenuItem, "1")
	assert.Equal(t, 5, line.Quantity)

	c.UpdateQuantity(KindMenuItem, "1", 0)
	assert.Equal(t, 0, c.Len())

	c.AddCatalogItem(pizza())
	c.UpdateQuantity(KindMenuItem, "1", -3)
	assert.Equal(t, 0, c.Len())

	// Unknown lines are left alone
	c.UpdateQuantity(KindOffer, "nope", 4)
	assert.Equal(t, 0, c.Len())
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())
	c.Remove(KindOffer, "1")
	assert.Equal(t, 1, c.Len())

	c.Remove(KindMenuItem, "1")
	assert.Equal(t, 0, c.Len())
}

func TestCart_MergeKeepsFirstSnapshot(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())

	repriced := pizza()
	repriced.Price = dec("99.00")
	c.AddCatalogItem(repriced)

	assertDec(t, "20", c.Total())
}

func TestCart_LinesIsACopy(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())

	lines := c.Lines()
	lines[0].Quantity = 42

	line, _ := c.Find(KindMenuItem, "1")
	assert.Equal(t, 1, line.Quantity)
}

func TestCart_InsertionOrder(t *testing.T) {
	c := New()
	c.AddOffer(pizzaWeek())
	salad := catalog.MenuItem{ID: "3", Name: "Caesar Salad", Price: dec("9.99")}
	c.AddCatalogItem(salad)
	c.AddCatalogItem(pizza())

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "50% OFF Pizza Week", lines[0].Entry.Title())
	assert.Equal(t, "Caesar Salad", lines[1].Entry.Title())
	assert.Equal(t, "Margherita Pizza", lines[2].Entry.Title())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "29.99", FormatAmount(dec("29.9925")))
	assert.Equal(t, "10.01", FormatAmount(dec("10.005")))
	assert.Equal(t, "12.00", FormatAmount(dec("12")))
}

func TestCart_JSONRoundTripKeepsWireShape(t *testing.T) {
	c := New()
	c.AddCatalogItem(pizza())
	c.AddOffer(pizzaWeek())

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var wire []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Len(t, wire, 2)
	assert.Contains(t, wire[0], "menuItem")
	assert.NotContains(t, wire[0], "offer")
	assert.Contains(t, wire[1], "offer")
	assert.NotContains(t, wire[1], "menuItem")

	restored := New()
	require.NoError(t, json.Unmarshal(raw, restored))
	assert.Equal(t, 2, restored.Len())
	assertDec(t, "20", restored.Total())
}

func TestLine_UnmarshalRejectsInvalidShapes(t *testing.T) {
	tests := map[string]string{
		"both set":      `{"menuItem":{"id":"1","price":1},"offer":{"id":"1"},"quantity":1}`,
		"neither set":   `{"quantity":1}`,
		"zero quantity": `{"menuItem":{"id":"1","price":1},"quantity":0}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			var l Line
			assert.Error(t, json.Unmarshal([]byte(raw), &l))
		})
	}
}

func TestCart_UnmarshalMergesDuplicates(t *testing.T) {
	raw := `[{"menuItem":{"id":"1","name":"A","price":2},"quantity":1},
	         {"menuItem":{"id":"1","name":"A","price":2},"quantity":2}]`

	c := New()
	require.NoError(t, json.Unmarshal([]byte(raw), c))
	require.Equal(t, 1, c.Len())
	line, _ := c.Find(KindMenuItem, "1")
	assert.Equal(t, 3, line.Quantity)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("offer")
	require.NoError(t, err)
	assert.Equal(t, KindOffer, k)

	_, err = ParseKind("menuItem")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
