package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const session = "feature-session"

// memCatalog hands out copies so edits after an add behave like admin
// edits against the database
type memCatalog struct {
	items  map[string]catalog.MenuItem
	offers map[string]catalog.Offer
}

func (m *memCatalog) GetMenuItem(_ context.Context, id string) (*catalog.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &item, nil
}

func (m *memCatalog) GetOffer(_ context.Context, id string) (*catalog.Offer, error) {
	offer, ok := m.offers[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &offer, nil
}

type memAdmins struct{ admins map[string]*admin.Admin }

func (m *memAdmins) Find(_ context.Context, username string) (*admin.Admin, error) {
	a, ok := m.admins[username]
	if !ok {
		return nil, admin.ErrAdminNotFound
	}
	return a, nil
}

func (m *memAdmins) SetPassword(_ context.Context, username, hash string) (int64, error) {
	a, ok := m.admins[username]
	if !ok {
		return 0, nil
	}
	a.Password = hash
	return 1, nil
}

type storefrontTestContext struct {
	store     *kv.MemoryStore
	keys      kv.Keys
	catalog   *memCatalog
	carts     *cart.Service
	orders    *order.Service
	admins    *memAdmins
	passwords *auth.PasswordManager
	adminSvc  *admin.Service
	gate      *admin.Gate

	totalBefore decimal.Decimal
	placed      *order.Order
	err         error
	verrs       checkout.ValidationErrors
}

func (c *storefrontTestContext) reset() {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront Backend"
	cfg.JWT.Secret = strings.Repeat("f", 32)
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = bcrypt.MinCost

	log := logger.Discard()
	c.store = kv.NewMemoryStore()
	c.keys = kv.NewKeys("storefront")
	c.catalog = &memCatalog{items: map[string]catalog.MenuItem{}, offers: map[string]catalog.Offer{}}
	c.carts = cart.NewService(c.store, c.catalog, c.keys, time.Hour, log)
	c.orders = order.NewService(c.store, c.carts, c.keys, log)
	c.admins = &memAdmins{admins: map[string]*admin.Admin{}}
	c.passwords = auth.NewPasswordManager(cfg)
	c.gate = admin.NewGate(c.store, c.keys)
	c.adminSvc = admin.NewService(c.admins, c.passwords, auth.NewJWTManager(cfg), c.gate, log)

	c.totalBefore = decimal.Zero
	c.placed = nil
	c.err = nil
	c.verrs = nil
}

func (c *storefrontTestContext) aMenuItemPriced(id, name, price string) error {
	c.catalog.items[id] = catalog.MenuItem{ID: id, Name: name, Price: decimal.RequireFromString(price)}
	return nil
}

func (c *storefrontTestContext) anOffer(id, title, originalPrice, discount string) error {
	c.catalog.offers[id] = catalog.Offer{
		ID:            id,
		Title:         title,
		OriginalPrice: decimal.RequireFromString(originalPrice),
		Discount:      decimal.RequireFromString(discount),
		Active:        true,
	}
	return nil
}

func (c *storefrontTestContext) addTimes(kind cart.Kind, id string, n int) error {
	for i := 0; i < n; i++ {
		if _, err := c.carts.AddItem(context.Background(), session, kind, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *storefrontTestContext) iAddMenuItem(id string, n int) error {
	return c.addTimes(cart.KindMenuItem, id, n)
}

func (c *storefrontTestContext) iAddOffer(id string, n int) error {
	return c.addTimes(cart.KindOffer, id, n)
}

func (c *storefrontTestContext) iSetTheQuantity(kind, id string, n int) error {
	k, err := cart.ParseKind(kind)
	if err != nil {
		return err
	}
	_, err = c.carts.UpdateQuantity(context.Background(), session, k, id, n)
	return err
}

func (c *storefrontTestContext) currentCart() (*cart.Cart, error) {
	return c.carts.Get(context.Background(), session)
}

func (c *storefrontTestContext) theCartHasLines(n int) error {
	ct, err := c.currentCart()
	if err != nil {
		return err
	}
	if ct.Len() != n {
		return fmt.Errorf("expected %d lines, got %d", n, ct.Len())
	}
	return nil
}

func (c *storefrontTestContext) theCartHasLineWithQuantity(kind, id string, qty int) error {
	ct, err := c.currentCart()
	if err != nil {
		return err
	}
	line, ok := ct.Find(cart.Kind(kind), id)
	if !ok {
		return fmt.Errorf("no %s %q line in cart", kind, id)
	}
	if line.Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, line.Quantity)
	}
	return nil
}

func (c *storefrontTestContext) theCartHasNoLine(kind, id string) error {
	ct, err := c.currentCart()
	if err != nil {
		return err
	}
	if _, ok := ct.Find(cart.Kind(kind), id); ok {
		return fmt.Errorf("cart still holds %s %q", kind, id)
	}
	return nil
}

func (c *storefrontTestContext) theCartTotalIs(want string) error {
	ct, err := c.currentCart()
	if err != nil {
		return err
	}
	if !ct.Total().Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("expected total %s, got %s", want, ct.Total())
	}
	return nil
}

func (c *storefrontTestContext) iPlaceAnOrder(name, email string) error {
	ct, err := c.currentCart()
	if err != nil {
		return err
	}
	c.totalBefore = ct.Total()
	c.placed, c.err = c.orders.CreateOrder(context.Background(), session, order.Customer{
		FullName: name,
		Email:    email,
		Phone:    "+1 555-0100",
		Address:  "1 Main St",
	})
	return nil
}

func (c *storefrontTestContext) placedOrder() (*order.Order, error) {
	if c.err != nil {
		return nil, fmt.Errorf("expected an order but got error: %v", c.err)
	}
	if c.placed == nil {
		return nil, errors.New("no order was placed")
	}
	return c.placed, nil
}

func (c *storefrontTestContext) theOrderTotalEqualsTheCartTotalBeforeCheckout() error {
	o, err := c.placedOrder()
	if err != nil {
		return err
	}
	if !o.TotalAmount.Equal(c.totalBefore) {
		return fmt.Errorf("order total %s, cart total was %s", o.TotalAmount, c.totalBefore)
	}
	return nil
}

func (c *storefrontTestContext) theNewestOrderIsTheOneJustPlaced() error {
	o, err := c.placedOrder()
	if err != nil {
		return err
	}
	list, err := c.orders.ListSessionOrders(context.Background(), session)
	if err != nil {
		return err
	}
	if len(list) == 0 || list[0].ID != o.ID {
		return fmt.Errorf("expected %s first in the order list", o.ID)
	}
	return nil
}

func (c *storefrontTestContext) theOrderIs(orderStatus, paymentStatus string) error {
	o, err := c.placedOrder()
	if err != nil {
		return err
	}
	if string(o.OrderStatus) != orderStatus || string(o.PaymentStatus) != paymentStatus {
		return fmt.Errorf("expected %s/%s, got %s/%s", orderStatus, paymentStatus, o.OrderStatus, o.PaymentStatus)
	}
	return nil
}

func (c *storefrontTestContext) theOrderIsRejectedBecauseTheCartIsEmpty() error {
	if !errors.Is(c.err, order.ErrEmptyCart) {
		return fmt.Errorf("expected ErrEmptyCart, got %v", c.err)
	}
	if c.placed != nil {
		return errors.New("an order was produced")
	}
	return nil
}

func (c *storefrontTestContext) thereAreNoOrders() error {
	list, err := c.orders.ListAllOrders(context.Background())
	if err != nil {
		return err
	}
	if len(list) != 0 {
		return fmt.Errorf("expected no orders, got %d", len(list))
	}
	return nil
}

func (c *storefrontTestContext) theDiscountOfOfferIsChangedTo(id, discount string) error {
	offer, ok := c.catalog.offers[id]
	if !ok {
		return fmt.Errorf("unknown offer %q", id)
	}
	offer.Discount = decimal.RequireFromString(discount)
	c.catalog.offers[id] = offer
	return nil
}

func (c *storefrontTestContext) storedOrder() (*order.Order, error) {
	o, err := c.placedOrder()
	if err != nil {
		return nil, err
	}
	return c.orders.GetOrder(context.Background(), o.ID)
}

func (c *storefrontTestContext) theStoredOrderTotalIs(want string) error {
	o, err := c.storedOrder()
	if err != nil {
		return err
	}
	if !o.TotalAmount.Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("expected stored total %s, got %s", want, o.TotalAmount)
	}
	return nil
}

func (c *storefrontTestContext) theStoredOrdersOfferDiscountIs(id, want string) error {
	o, err := c.storedOrder()
	if err != nil {
		return err
	}
	for _, l := range o.Items {
		if e, ok := l.Entry.(cart.OfferEntry); ok && e.Offer.ID == id {
			if !e.Offer.Discount.Equal(decimal.RequireFromString(want)) {
				return fmt.Errorf("expected discount %s, got %s", want, e.Offer.Discount)
			}
			return nil
		}
	}
	return fmt.Errorf("offer %q not in stored order", id)
}

func (c *storefrontTestContext) iValidateCustomer(name, email, phone, address string) error {
	c.verrs = checkout.ValidateCustomerInfo(checkout.CustomerInfo{
		FullName: name,
		Email:    email,
		Phone:    phone,
		Address:  address,
	})
	return nil
}

func (c *storefrontTestContext) thereIsAValidationErrorOnOnly(field string) error {
	if len(c.verrs) != 1 || c.verrs[0].Field != field {
		return fmt.Errorf("expected a single error on %s, got %v", field, c.verrs)
	}
	return nil
}

func (c *storefrontTestContext) thereAreValidationErrors(n int) error {
	if len(c.verrs) != n {
		return fmt.Errorf("expected %d validation errors, got %v", n, c.verrs)
	}
	return nil
}

func (c *storefrontTestContext) anAdminWithPassword(username, password string) error {
	hash, err := c.passwords.HashPassword(password)
	if err != nil {
		return err
	}
	c.admins.admins[username] = &admin.Admin{Username: username, Password: hash}
	return nil
}

func (c *storefrontTestContext) iLogIn(username, password string) error {
	_, c.err = c.adminSvc.Login(context.Background(), session, admin.LoginRequest{Username: username, Password: password})
	return nil
}

func (c *storefrontTestContext) loginFails() error {
	if !errors.Is(c.err, admin.ErrInvalidCredentials) {
		return fmt.Errorf("expected invalid credentials, got %v", c.err)
	}
	return nil
}

func (c *storefrontTestContext) iLogOut() error {
	return c.adminSvc.Logout(context.Background(), session)
}

// theSessionIsReloaded drops the in-memory gate and reads the flag back
// from the persisted store
func (c *storefrontTestContext) theSessionIsReloaded() error {
	c.gate = admin.NewGate(c.store, c.keys)
	return nil
}

func (c *storefrontTestContext) theAdminFlagIs(not string) error {
	ok, err := c.gate.IsAdmin(context.Background(), session)
	if err != nil {
		return err
	}
	want := not == ""
	if ok != want {
		return fmt.Errorf("expected admin flag %v, got %v", want, ok)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a menu item "([^"]*)" named "([^"]*)" priced ([\d.]+)$`, tc.aMenuItemPriced)
	ctx.Step(`^an offer "([^"]*)" titled "([^"]*)" with original price ([\d.]+) and discount ([\d.]+)$`, tc.anOffer)
	ctx.Step(`^an admin "([^"]*)" with password "([^"]*)"$`, tc.anAdminWithPassword)

	// When steps
	ctx.Step(`^I add menu item "([^"]*)" to the cart (\d+) times$`, tc.iAddMenuItem)
	ctx.Step(`^I add offer "([^"]*)" to the cart (\d+) times$`, tc.iAddOffer)
	ctx.Step(`^I set the quantity of (menu_item|offer) "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^I place an order as "([^"]*)" with email "([^"]*)"$`, tc.iPlaceAnOrder)
	ctx.Step(`^the discount of offer "([^"]*)" is changed to ([\d.]+)$`, tc.theDiscountOfOfferIsChangedTo)
	ctx.Step(`^I validate customer "([^"]*)" with email "([^"]*)" phone "([^"]*)" and address "([^"]*)"$`, tc.iValidateCustomer)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, tc.iLogIn)
	ctx.Step(`^I log out$`, tc.iLogOut)
	ctx.Step(`^the session is reloaded$`, tc.theSessionIsReloaded)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart has a (menu_item|offer) "([^"]*)" line with quantity (\d+)$`, tc.theCartHasLineWithQuantity)
	ctx.Step(`^the cart has no (menu_item|offer) "([^"]*)" line$`, tc.theCartHasNoLine)
	ctx.Step(`^the cart total is ([\d.]+)$`, tc.theCartTotalIs)
	ctx.Step(`^the order total equals the cart total before checkout$`, tc.theOrderTotalEqualsTheCartTotalBeforeCheckout)
	ctx.Step(`^the newest order is the one just placed$`, tc.theNewestOrderIsTheOneJustPlaced)
	ctx.Step(`^the order is "([^"]*)" and "([^"]*)"$`, tc.theOrderIs)
	ctx.Step(`^the order is rejected because the cart is empty$`, tc.theOrderIsRejectedBecauseTheCartIsEmpty)
	ctx.Step(`^there are no orders$`, tc.thereAreNoOrders)
	ctx.Step(`^the stored order total is ([\d.]+)$`, tc.theStoredOrderTotalIs)
	ctx.Step(`^the stored order's offer "([^"]*)" discount is ([\d.]+)$`, tc.theStoredOrdersOfferDiscountIs)
	ctx.Step(`^there is a validation error on "([^"]*)" only$`, tc.thereIsAValidationErrorOnOnly)
	ctx.Step(`^there are (\d+) validation errors$`, tc.thereAreValidationErrors)
	ctx.Step(`^login fails$`, tc.loginFails)
	ctx.Step(`^the admin flag is (not )?set$`, tc.theAdminFlagIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"storefront.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
