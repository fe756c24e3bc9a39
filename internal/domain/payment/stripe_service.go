// internal/domain/payment/stripe_service.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/your-org/storefront-backend/internal/config"
)

var (
	ErrNotConfigured       = errors.New("payment provider is not configured")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrPaymentNotSucceeded = errors.New("payment has not succeeded")
	ErrAmountMismatch      = errors.New("paid amount does not match order total")
)

// PaymentIntent is the part of a Stripe PaymentIntent the storefront hands out
type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"clientSecret"`
}

// StripeService creates and verifies Stripe PaymentIntents
type StripeService struct {
	secretKey string
	currency  string
	simulate  bool
	intents   paymentintent.Client
	log       logrus.FieldLogger
}

// NewStripeService creates a new Stripe service. An empty base URL means
// the live Stripe API.
func NewStripeService(cfg *config.Config, log logrus.FieldLogger) *StripeService {
	log = log.WithField("component", "stripe")

	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: 30 * time.Second},
		MaxNetworkRetries: stripe.Int64(cfg.External.Stripe.MaxRetries),
		LeveledLogger:     log,
	}
	if u := strings.TrimRight(cfg.External.Stripe.BaseURL, "/"); u != "" {
		backendCfg.URL = stripe.String(u)
	}

	return &StripeService{
		secretKey: cfg.External.Stripe.SecretKey,
		currency:  cfg.External.Stripe.Currency,
		simulate:  cfg.External.Stripe.Simulate,
		intents: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.External.Stripe.SecretKey,
		},
		log: log,
	}
}

// Simulated reports whether payments are approved locally instead of by Stripe
func (s *StripeService) Simulated() bool {
	return s.secretKey == "" && s.simulate
}

// MinorUnits converts a major-unit amount to cents, rounding half up
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreatePaymentIntent registers a payment of amount with automatic payment methods
func (s *StripeService) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (*PaymentIntent, error) {
	cents := MinorUnits(amount)
	if cents <= 0 {
		return nil, ErrInvalidAmount
	}

	if s.Simulated() {
		id := "pi_sim_" + strings.ReplaceAll(uuid.NewString(), "-", "")
		s.log.WithField("amount", cents).Warn("payment simulation enabled, issuing local payment intent")
		return &PaymentIntent{
			ID:           id,
			Amount:       cents,
			Currency:     s.currency,
			Status:       "requires_payment_method",
			ClientSecret: id + "_secret_simulated",
		}, nil
	}
	if s.secretKey == "" {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := s.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	intent := fromStripe(pi)

	s.log.WithFields(logrus.Fields{
		"payment_intent_id": intent.ID,
		"amount":            intent.Amount,
		"currency":          intent.Currency,
	}).Info("payment intent created")

	return intent, nil
}

// ConfirmPayment checks that intentID has succeeded for exactly amount.
// In simulation mode every payment is approved.
func (s *StripeService) ConfirmPayment(ctx context.Context, intentID string, amount decimal.Decimal) error {
	if s.Simulated() {
		return nil
	}
	if s.secretKey == "" {
		return ErrNotConfigured
	}
	if intentID == "" {
		return fmt.Errorf("%w: missing payment intent id", ErrPaymentNotSucceeded)
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := s.intents.Get(intentID, params)
	if err != nil {
		return fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: status %s", ErrPaymentNotSucceeded, pi.Status)
	}
	if pi.Amount != MinorUnits(amount) {
		return fmt.Errorf("%w: paid %d, expected %d", ErrAmountMismatch, pi.Amount, MinorUnits(amount))
	}
	return nil
}

func fromStripe(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}
}
