package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

type memCatalog struct{}

func (memCatalog) GetMenuItem(_ context.Context, id string) (*catalog.MenuItem, error) {
	if id != "1" {
		return nil, catalog.ErrNotFound
	}
	return &catalog.MenuItem{ID: "1", Name: "Margherita Pizza", Price: decimal.RequireFromString("10")}, nil
}

func (memCatalog) GetOffer(_ context.Context, id string) (*catalog.Offer, error) {
	if id != "1" {
		return nil, catalog.ErrNotFound
	}
	return &catalog.Offer{ID: "1", Title: "Pizza Week", OriginalPrice: decimal.RequireFromString("20"),
		Discount: decimal.NewFromInt(50), Active: true}, nil
}

type recordingListener struct{ got []*Order }

func (r *recordingListener) OrderStatusChanged(_ context.Context, o *Order) { r.got = append(r.got, o) }

type fixture struct {
	store  *kv.MemoryStore
	carts  *cart.Service
	orders *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	keys := kv.NewKeys("storefront")
	carts := cart.NewService(store, memCatalog{}, keys, time.Hour, logger.Discard())
	return &fixture{store: store, carts: carts, orders: NewService(store, carts, keys, logger.Discard())}
}

var alice = Customer{FullName: "Alice", Email: "alice@example.com", Phone: "+1 555-0100", Address: "1 Main St"}

func TestCreateOrder_SnapshotsCartAndClearsIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.AddItem(ctx, "s1", cart.KindMenuItem, "1")
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "s1", cart.KindMenuItem, "1")
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "s1", cart.KindOffer, "1")
	require.NoError(t, err)

	o, err := f.orders.CreateOrder(ctx, "s1", alice)
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d+$`, o.ID)
	assert.Equal(t, "Alice", o.CustomerName)
	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, OrderStatusNew, o.OrderStatus)
	assert.True(t, decimal.NewFromInt(30).Equal(o.TotalAmount), "total %s", o.TotalAmount)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, 3, o.ItemCount())

	c, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	list, err := f.orders.ListSessionOrders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)
}

func TestCreateOrder_EmptyCartLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.orders.CreateOrder(ctx, "s1", alice)
	assert.ErrorIs(t, err, ErrEmptyCart)

	list, err := f.orders.ListAllOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrder_LaterCartChangesDoNotAffectOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.AddItem(ctx, "s1", cart.KindMenuItem, "1")
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, "s1", alice)
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, "s1", cart.KindOffer, "1")
	require.NoError(t, err)

	stored, err := f.orders.GetSessionOrder(ctx, "s1", o.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(stored.TotalAmount))
}

func TestOrders_MostRecentFirstAndSessionScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var ids []string
	for _, session := range []string{"s1", "s2", "s1"} {
		_, err := f.carts.AddItem(ctx, session, cart.KindMenuItem, "1")
		require.NoError(t, err)
		o, err := f.orders.CreateOrder(ctx, session, alice)
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	all, err := f.orders.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	mine, err := f.orders.ListSessionOrders(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ids[2], mine[0].ID)

	_, err = f.orders.GetSessionOrder(ctx, "s1", ids[1])
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.orders.GetOrder(ctx, "ORD-0")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_AnyToAny(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	listener := &recordingListener{}
	f.orders.SetStatusListener(listener)

	_, err := f.carts.AddItem(ctx, "s1", cart.KindMenuItem, "1")
	require.NoError(t, err)
	o, err := f.orders.CreateOrder(ctx, "s1", alice)
	require.NoError(t, err)

	completed := OrderStatusCompleted
	updated, err := f.orders.UpdateStatus(ctx, o.ID, StatusUpdate{OrderStatus: &completed})
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, updated.OrderStatus)
	assert.Equal(t, PaymentStatusPaid, updated.PaymentStatus)

	// Backwards is allowed
	fresh := OrderStatusNew
	failed := PaymentStatusFailed
	updated, err = f.orders.UpdateStatus(ctx, o.ID, StatusUpdate{OrderStatus: &fresh, PaymentStatus: &failed})
	require.NoError(t, err)
	assert.Equal(t, OrderStatusNew, updated.OrderStatus)
	assert.Equal(t, PaymentStatusFailed, updated.PaymentStatus)
	assert.Len(t, listener.got, 2)

	bogus := OrderStatus("Shipped")
	_, err = f.orders.UpdateStatus(ctx, o.ID, StatusUpdate{OrderStatus: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.orders.UpdateStatus(ctx, o.ID, StatusUpdate{})
	assert.ErrorIs(t, err, ErrNoStatusChange)
}

type failingStore struct{ *kv.MemoryStore }

func (failingStore) Commit(context.Context, ...kv.Op) error { return errors.New("connection reset") }

func TestCreateOrder_CommitFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	keys := kv.NewKeys("storefront")
	carts := cart.NewService(mem, memCatalog{}, keys, time.Hour, logger.Discard())
	orders := NewService(failingStore{mem}, carts, keys, logger.Discard())

	_, err := carts.AddItem(ctx, "s1", cart.KindMenuItem, "1")
	require.NoError(t, err)

	_, err = orders.CreateOrder(ctx, "s1", alice)
	require.Error(t, err)

	c, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestIDGenerator_StrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := &IDGenerator{now: func() time.Time { return fixed }}

	assert.Equal(t, "ORD-1700000000000", g.Next())
	assert.Equal(t, "ORD-1700000000001", g.Next())
	assert.Equal(t, "ORD-1700000000002", g.Next())
}

func TestCreateOrder_ReplicasSharingAStoreNeverOverwrite(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	keys := kv.NewKeys("storefront")
	carts := cart.NewService(store, memCatalog{}, keys, time.Hour, logger.Discard())

	fixed := time.UnixMilli(1700000000000)
	replica := func() *Service {
		s := NewService(store, carts, keys, logger.Discard())
		s.ids = &IDGenerator{now: func() time.Time { return fixed }}
		return s
	}
	a, b := replica(), replica()

	_, err := carts.AddItem(ctx, "alice", cart.KindMenuItem, "1")
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, "bob", cart.KindOffer, "1")
	require.NoError(t, err)

	oa, err := a.CreateOrder(ctx, "alice", alice)
	require.NoError(t, err)
	ob, err := b.CreateOrder(ctx, "bob", Customer{FullName: "Bob", Email: "bob@example.com", Phone: "+1 555-0101"})
	require.NoError(t, err)
	assert.NotEqual(t, oa.ID, ob.ID)

	mine, err := a.GetSessionOrder(ctx, "alice", oa.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", mine.CustomerName)

	all, err := a.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bob", all[0].CustomerName)
	assert.Equal(t, "Alice", all[1].CustomerName)
}

func TestCreateOrderFromCart_UsesGivenSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.AddItem(ctx, "s1", cart.KindMenuItem, "1")
	require.NoError(t, err)
	confirmed, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)

	_, err = f.carts.UpdateQuantity(ctx, "s1", cart.KindMenuItem, "1", 10)
	require.NoError(t, err)

	o, err := f.orders.CreateOrderFromCart(ctx, "s1", confirmed, alice)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(o.TotalAmount), "total %s", o.TotalAmount)
	assert.Equal(t, 1, o.ItemCount())

	c, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCreateOrderFromCart_RejectsEmptySnapshot(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.CreateOrderFromCart(context.Background(), "s1", nil, alice)
	assert.ErrorIs(t, err, ErrEmptyCart)
}
