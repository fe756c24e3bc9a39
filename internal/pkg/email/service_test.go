package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:           "ORD-1700000000000",
		CustomerName: "Alice <script>",
		Email:        "alice@example.com",
		Items: []cart.Line{{
			Entry:    cart.CatalogEntry{Item: catalog.MenuItem{ID: "1", Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99")}},
			Quantity: 2,
		}},
		TotalAmount:   decimal.RequireFromString("25.98"),
		PaymentStatus: order.PaymentStatusPaid,
		OrderStatus:   order.OrderStatusNew,
		CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storefront.CompanyName = "Bella Cucina"
	cfg.Storefront.CompanyEmail = "help@example.com"
	svc := NewEmailService(cfg, logger.Discard())

	var sent *Email
	svc.send = func(_ context.Context, e *Email) error {
		sent = e
		return nil
	}

	require.NoError(t, svc.SendOrderConfirmation(context.Background(), sampleOrder()))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"alice@example.com"}, sent.To)
	assert.Equal(t, "Order Confirmation - ORD-1700000000000", sent.Subject)
	assert.Contains(t, sent.HTMLContent, "Margherita Pizza")
	assert.Contains(t, sent.HTMLContent, "$12.99")
	assert.Contains(t, sent.HTMLContent, "$25.98")
	assert.Contains(t, sent.HTMLContent, "Bella Cucina")
	assert.NotContains(t, sent.HTMLContent, "<script>")
}

func TestSendEmail_LogProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Email.Provider = "log"
	svc := NewEmailService(cfg, logger.Discard())
	assert.NoError(t, svc.SendEmail(context.Background(), &Email{To: []string{"a@b.c"}}))

	cfg.External.Email.Provider = "carrier-pigeon"
	assert.Error(t, svc.SendEmail(context.Background(), &Email{}))
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("Shop", "shop@example.com", "", &Email{
		To:          []string{"a@example.com", "b@example.com"},
		Subject:     "Hi",
		HTMLContent: "<p>body</p>",
	}))

	assert.Contains(t, msg, "From: Shop <shop@example.com>\r\n")
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.NotContains(t, msg, "Reply-To")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>body</p>"))
}
