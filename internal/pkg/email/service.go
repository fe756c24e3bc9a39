// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// EmailService sends customer notifications
type EmailService struct {
	config    *config.Config
	templates *template.Template
	log       logrus.FieldLogger
	// send is swapped in tests
	send func(ctx context.Context, email *Email) error
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, log logrus.FieldLogger) *EmailService {
	s := &EmailService{
		config:    cfg,
		templates: template.Must(template.New("emails").Parse(emailTemplates)),
		log:       log.WithField("component", "email"),
	}
	s.send = s.SendEmail
	return s
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(ctx, email)
	case "log", "":
		s.log.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("email not sent, log provider configured")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendOrderConfirmation emails the customer a summary of a new order
func (s *EmailService) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	html, err := s.render("order_confirmation", s.orderData(o))
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return s.send(ctx, &Email{
		To:          []string{o.Email},
		Subject:     fmt.Sprintf("Order Confirmation - %s", o.ID),
		HTMLContent: html,
		Type:        EmailTypeOrderConfirmation,
	})
}

// SendOrderStatusUpdate tells the customer an admin changed their order
func (s *EmailService) SendOrderStatusUpdate(ctx context.Context, o *order.Order) error {
	html, err := s.render("order_status_update", s.orderData(o))
	if err != nil {
		return fmt.Errorf("failed to render order status template: %w", err)
	}

	return s.send(ctx, &Email{
		To:          []string{o.Email},
		Subject:     fmt.Sprintf("Order %s is now %s", o.ID, o.OrderStatus),
		HTMLContent: html,
		Type:        EmailTypeOrderStatusUpdate,
	})
}

func (s *EmailService) orderData(o *order.Order) OrderEmailData {
	return newOrderEmailData(s.config.Storefront.CompanyName, s.config.Storefront.CompanyEmail, o)
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const emailTemplates = `
{{define "header"}}<!DOCTYPE html>
<html><head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
<h1 style="color: #e85d04;">{{.SiteName}}</h1>{{end}}

{{define "footer"}}<p style="font-size: 12px; color: #777;">Questions? Contact us at {{.SupportEmail}}.<br>&copy; {{.Year}} {{.SiteName}}</p>
</body></html>{{end}}

{{define "items"}}<table style="width: 100%; border-collapse: collapse;">
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">${{.UnitPrice}}</td><td align="right">${{.Total}}</td></tr>
{{end}}<tr><td colspan="3" align="right"><strong>Total</strong></td><td align="right"><strong>${{.Total}}</strong></td></tr>
</table>{{end}}

{{define "order_confirmation"}}{{template "header" .}}
<p>Hi {{.CustomerName}},</p>
<p>Thank you for your order! We received order <strong>{{.OrderID}}</strong> on {{.OrderDate}}.</p>
{{template "items" .}}
<p>Payment status: {{.PaymentStatus}}</p>
{{template "footer" .}}{{end}}

{{define "order_status_update"}}{{template "header" .}}
<p>Hi {{.CustomerName}},</p>
<p>Your order <strong>{{.OrderID}}</strong> is now <strong>{{.OrderStatus}}</strong> (payment {{.PaymentStatus}}).</p>
{{template "footer" .}}{{end}}
`
