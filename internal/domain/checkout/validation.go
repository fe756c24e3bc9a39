// internal/domain/checkout/validation.go
package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	digitsPattern = regexp.MustCompile(`^\d{16}$`)
	whitespace    = regexp.MustCompile(`\s`)
)

// CustomerInfo is the contact data collected before payment
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// PaymentInfo is the card form; it is validated and never stored
type PaymentInfo struct {
	CardholderName string `json:"cardholderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

// FieldError is one failed check
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists failed checks in the order they ran. Empty means valid.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message recorded for field, or "" if it passed
func (v ValidationErrors) Message(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (v *ValidationErrors) add(field, msg string) {
	*v = append(*v, FieldError{Field: field, Message: msg})
}

// ValidateCustomerInfo checks every field and collects all violations
func ValidateCustomerInfo(info CustomerInfo) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(info.FullName) == "" {
		errs.add("fullName", "Full name is required")
	}

	// Emptiness is judged on the trimmed value, format on the raw input
	if strings.TrimSpace(info.Email) == "" {
		errs.add("email", "Email is required")
	} else if !emailPattern.MatchString(info.Email) {
		errs.add("email", "Invalid email format")
	}

	if strings.TrimSpace(info.Phone) == "" {
		errs.add("phone", "Phone number is required")
	} else if !phonePattern.MatchString(info.Phone) {
		errs.add("phone", "Invalid phone number")
	}

	if strings.TrimSpace(info.Address) == "" {
		errs.add("address", "Address is required")
	}

	return errs
}

// ValidatePaymentInfo checks the card form the same way
func ValidatePaymentInfo(p PaymentInfo) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(p.CardholderName) == "" {
		errs.add("cardholderName", "Cardholder name is required")
	}

	if strings.TrimSpace(p.CardNumber) == "" {
		errs.add("cardNumber", "Card number is required")
	} else if !digitsPattern.MatchString(whitespace.ReplaceAllString(p.CardNumber, "")) {
		errs.add("cardNumber", "Invalid card number (16 digits required)")
	}

	if strings.TrimSpace(p.ExpiryDate) == "" {
		errs.add("expiryDate", "Expiry date is required")
	} else if !expiryPattern.MatchString(p.ExpiryDate) {
		errs.add("expiryDate", "Invalid format (MM/YY)")
	}

	if strings.TrimSpace(p.CVV) == "" {
		errs.add("cvv", "CVV is required")
	} else if !cvvPattern.MatchString(p.CVV) {
		errs.add("cvv", "Invalid CVV")
	}

	return errs
}

func (c CustomerInfo) trimmed() CustomerInfo {
	return CustomerInfo{
		FullName: strings.TrimSpace(c.FullName),
		Email:    strings.TrimSpace(c.Email),
		Phone:    strings.TrimSpace(c.Phone),
		Address:  strings.TrimSpace(c.Address),
	}
}
