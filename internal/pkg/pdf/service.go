// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
	tmpl   *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	if cfg.External.PDF.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(cfg.External.PDF.WkhtmltopdfPath)
	}
	return &Service{
		config: cfg,
		tmpl:   template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	OrderID       string
	OrderDate     string
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	PaymentStatus order.PaymentStatus
	OrderStatus   order.OrderStatus
	Items         []order.ReceiptLine
	Total         string
	Company       CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name  string
	Email string
	Phone string
}

// GenerateReceipt renders an order receipt as a PDF
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(s.receiptData(o))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) receiptData(o *order.Order) ReceiptData {
	return ReceiptData{
		OrderID:       o.ID,
		OrderDate:     o.CreatedAt.Format("January 2, 2006 15:04 MST"),
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentStatus: o.PaymentStatus,
		OrderStatus:   o.OrderStatus,
		Items:         o.ReceiptLines(),
		Total:         o.FormattedTotal(),
		Company: CompanyInfo{
			Name:  s.config.Storefront.CompanyName,
			Email: s.config.Storefront.CompanyEmail,
			Phone: s.config.Storefront.CompanyPhone,
		},
	}
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.OrderID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #e85d04; padding-bottom: 10px; margin-bottom: 20px; }
        .header h1 { color: #e85d04; margin: 0; }
        .meta p, .customer p { margin: 2px 0; }
        .items-table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .items-table th, .items-table td { border-bottom: 1px solid #ddd; padding: 6px; }
        .items-table th { background: #f5f5f5; text-align: left; }
        .num { text-align: right; }
        .total-row td { font-weight: bold; border-top: 2px solid #333; }
        .footer { margin-top: 30px; font-size: 11px; color: #777; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Company.Name}}</h1>
        <p>Order Receipt</p>
    </div>

    <div class="meta">
        <p><strong>Order:</strong> {{.OrderID}}</p>
        <p><strong>Date:</strong> {{.OrderDate}}</p>
        <p><strong>Payment:</strong> {{.PaymentStatus}} &middot; <strong>Status:</strong> {{.OrderStatus}}</p>
    </div>

    <div class="customer">
        <h3>Customer</h3>
        <p>{{.CustomerName}}</p>
        <p>{{.Email}}</p>
        <p>{{.Phone}}</p>
        {{if .Address}}<p>{{.Address}}</p>{{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>{{.Name}}{{if eq .Kind "offer"}} <small>(offer)</small>{{end}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.UnitPrice}}</td>
                <td class="num">${{.Total}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3" class="num">Total</td>
                <td class="num">${{.Total}}</td>
            </tr>
        </tbody>
    </table>

    <div class="footer">
        <p>Thank you for your order!</p>
        <p>Questions? Contact us at {{.Company.Email}}{{if .Company.Phone}} or {{.Company.Phone}}{{end}}</p>
    </div>
</body>
</html>
`
