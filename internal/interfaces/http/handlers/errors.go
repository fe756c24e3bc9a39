// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// statusFor maps domain errors to HTTP status codes; ok is false for
// unexpected errors
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, admin.ErrAdminNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, catalog.ErrDuplicateID),
		errors.Is(err, checkout.ErrPaymentAlreadyUsed):
		return http.StatusConflict, true
	case errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, cart.ErrUnknownKind),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrNoStatusChange),
		errors.Is(err, checkout.ErrCustomerInfoRequired),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, auth.ErrEmptyPassword),
		errors.Is(err, auth.ErrPasswordTooLong):
		return http.StatusBadRequest, true
	case errors.Is(err, cart.ErrOfferInactive):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, admin.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, payment.ErrPaymentNotSucceeded),
		errors.Is(err, payment.ErrAmountMismatch):
		return http.StatusPaymentRequired, true
	case errors.Is(err, payment.ErrNotConfigured):
		return http.StatusServiceUnavailable, true
	}
	return http.StatusInternalServerError, false
}

// respondError writes {error} for err. Validation failures carry per-field
// messages; unexpected errors are logged and hidden from the client.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var verrs checkout.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": verrs,
		})
		return
	}

	_ = c.Error(err)
	status, known := statusFor(err)
	if !known {
		log.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"path":       c.FullPath(),
		}).Error("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	msg := err.Error()
	switch {
	case errors.Is(err, admin.ErrInvalidCredentials):
		msg = "Invalid credentials"
	case errors.Is(err, admin.ErrAdminNotFound):
		msg = "User not found"
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}
