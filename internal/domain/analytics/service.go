// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

const recentOrdersLimit = 5

// Catalog counts what is on sale
type Catalog interface {
	CountMenuItems(ctx context.Context) (int64, error)
	CountActiveOffers(ctx context.Context) (int64, error)
}

// Orders reads the order history
type Orders interface {
	ListAllOrders(ctx context.Context) ([]order.Order, error)
}

// Service builds the admin dashboard
type Service struct {
	catalog Catalog
	orders  Orders
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewService creates a new analytics service
func NewService(catalog Catalog, orders Orders, log logrus.FieldLogger) *Service {
	return &Service{
		catalog: catalog,
		orders:  orders,
		log:     log.WithField("component", "analytics"),
		now:     time.Now,
	}
}

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	TotalOrders     int                         `json:"totalOrders"`
	OrdersToday     int                         `json:"ordersToday"`
	MenuItems       int64                       `json:"menuItems"`
	ActiveOffers    int64                       `json:"activeOffers"`
	Revenue         decimal.Decimal             `json:"revenue"`
	RevenueToday    decimal.Decimal             `json:"revenueToday"`
	AvgOrderValue   decimal.Decimal             `json:"avgOrderValue"`
	ByOrderStatus   map[order.OrderStatus]int   `json:"byOrderStatus"`
	ByPaymentStatus map[order.PaymentStatus]int `json:"byPaymentStatus"`
	RecentOrders    []order.Order               `json:"recentOrders"`
}

// GetDashboardStats combines catalog counts with order totals. Revenue is
// the sum of order totals regardless of status.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	items, err := s.catalog.CountMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}
	offers, err := s.catalog.CountActiveOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active offers: %w", err)
	}
	orders, err := s.orders.ListAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalOrders:     len(orders),
		MenuItems:       items,
		ActiveOffers:    offers,
		Revenue:         decimal.Zero,
		RevenueToday:    decimal.Zero,
		AvgOrderValue:   decimal.Zero,
		ByOrderStatus:   map[order.OrderStatus]int{},
		ByPaymentStatus: map[order.PaymentStatus]int{},
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, o := range orders {
		stats.Revenue = stats.Revenue.Add(o.TotalAmount)
		stats.ByOrderStatus[o.OrderStatus]++
		stats.ByPaymentStatus[o.PaymentStatus]++
		if !o.CreatedAt.Before(startOfDay) {
			stats.OrdersToday++
			stats.RevenueToday = stats.RevenueToday.Add(o.TotalAmount)
		}
	}
	if len(orders) > 0 {
		stats.AvgOrderValue = stats.Revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	// ListAllOrders is most-recent-first
	n := min(len(orders), recentOrdersLimit)
	stats.RecentOrders = orders[:n]

	return stats, nil
}
