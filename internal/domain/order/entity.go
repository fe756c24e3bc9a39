// internal/domain/order/entity.go
package order

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// OrderStatus represents the fulfilment status
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "New"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted:
		return true
	}
	return false
}

// Valid reports whether s is a known payment status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusFailed:
		return true
	}
	return false
}

// Customer is the contact snapshot copied into an order
type Customer struct {
	FullName string
	Email    string
	Phone    string
	Address  string
}

// Order is an immutable record of a placed cart; only the two statuses change
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address,omitempty"`
	Items         []cart.Line     `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	OrderStatus   OrderStatus     `json:"orderStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ItemCount is the sum of line quantities
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Items {
		n += l.Quantity
	}
	return n
}

// record is the stored form, tying an order to the session that placed it
type record struct {
	Order
	SessionID string `json:"sessionId"`
}

// IDGenerator issues ORD-<unix millis> ids that strictly increase within
// the process even when two orders land in the same millisecond
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator reading the wall clock
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns the next order id
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("ORD-%d", ms)
}

// ReceiptLine is a display-ready order line with amounts rounded to cents
type ReceiptLine struct {
	Name      string
	Kind      cart.Kind
	Quantity  int
	UnitPrice string
	Total     string
}

// ReceiptLines formats the order's items for receipts and emails
func (o *Order) ReceiptLines() []ReceiptLine {
	out := make([]ReceiptLine, 0, len(o.Items))
	for _, l := range o.Items {
		out = append(out, ReceiptLine{
			Name:      l.Entry.Title(),
			Kind:      l.Entry.Kind(),
			Quantity:  l.Quantity,
			UnitPrice: cart.FormatAmount(l.Entry.UnitPrice()),
			Total:     cart.FormatAmount(l.Total()),
		})
	}
	return out
}

// FormattedTotal returns the total rounded to two decimals
func (o *Order) FormattedTotal() string {
	return cart.FormatAmount(o.TotalAmount)
}
