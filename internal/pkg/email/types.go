// internal/pkg/email/types.go
package email

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/order"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeOrderStatusUpdate EmailType = "order_status_update"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName     string
	SupportEmail string
	CustomerName string
	Year         int
}

// OrderEmailData is rendered into order related emails
type OrderEmailData struct {
	EmailTemplateData
	OrderID       string
	OrderDate     string
	OrderStatus   order.OrderStatus
	PaymentStatus order.PaymentStatus
	Total         string
	Items         []order.ReceiptLine
}

func newOrderEmailData(siteName, supportEmail string, o *order.Order) OrderEmailData {
	return OrderEmailData{
		EmailTemplateData: EmailTemplateData{
			SiteName:     siteName,
			SupportEmail: supportEmail,
			CustomerName: o.CustomerName,
			Year:         time.Now().Year(),
		},
		OrderID:       o.ID,
		OrderDate:     o.CreatedAt.Format("January 2, 2006 15:04"),
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
		Total:         o.FormattedTotal(),
		Items:         o.ReceiptLines(),
	}
}
