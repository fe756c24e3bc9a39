// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// PaymentIntents registers payments with the provider
type PaymentIntents interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (*payment.PaymentIntent, error)
}

// CheckoutHandler handles the customer info, payment intent and pay steps
type CheckoutHandler struct {
	checkout *checkout.Service
	payments PaymentIntents
	log      logrus.FieldLogger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(svc *checkout.Service, payments PaymentIntents, log logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, payments: payments, log: log}
}

// CreatePaymentIntentRequest carries the amount in major units
type CreatePaymentIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	intent, err := h.payments.CreatePaymentIntent(c.Request.Context(), req.Amount)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// ConfirmCustomer handles POST /checkout/customer
func (h *CheckoutHandler) ConfirmCustomer(c *gin.Context) {
	var req checkout.CustomerInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	info, err := h.checkout.Confirm(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Customer information saved",
		"data":    info,
	})
}

// GetCustomer handles GET /checkout/customer
func (h *CheckoutHandler) GetCustomer(c *gin.Context) {
	info, err := h.checkout.CustomerInfo(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": info})
}

// PlaceOrder handles POST /checkout/pay
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	o, err := h.checkout.PlaceOrder(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    o,
	})
}
