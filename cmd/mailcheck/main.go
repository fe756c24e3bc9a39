// cmd/mailcheck/main.go
package main

import (
	"context"
	"flag"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

// Sends a sample order confirmation through the configured email provider.
func main() {
	to := flag.String("to", "", "recipient address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg)
	if *to == "" {
		log.Fatal("Usage: mailcheck -to <address>")
	}

	c := cart.New()
	c.AddCatalogItem(catalog.MenuItem{ID: "sample", Name: "Sample item", Price: decimal.RequireFromString("9.99")})
	o := &order.Order{
		ID:            order.NewIDGenerator().Next(),
		CustomerName:  "Mail Check",
		Email:         *to,
		Items:         c.Lines(),
		TotalAmount:   c.Total(),
		PaymentStatus: order.PaymentStatusPaid,
		OrderStatus:   order.OrderStatusNew,
		CreatedAt:     time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := email.NewEmailService(cfg, log).SendOrderConfirmation(ctx, o); err != nil {
		log.WithError(err).Fatal("Send failed")
	}
	log.WithField("provider", cfg.External.Email.Provider).Info("Sample order confirmation sent")
}
