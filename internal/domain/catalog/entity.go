// internal/domain/catalog/entity.go
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, matching the storefront client.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// MenuItem is a purchasable catalog entry
type MenuItem struct {
	ID                    string          `gorm:"primaryKey;size:64" json:"id"`
	Name                  string          `gorm:"not null;size:255" json:"name"`
	Description           string          `gorm:"type:text" json:"description"`
	DetailPageDescription string          `gorm:"type:text" json:"detailPageDescription,omitempty"`
	Price                 decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Image                 string          `gorm:"type:text" json:"image"`
	Category              string          `gorm:"size:100;index" json:"category,omitempty"`
	CreatedAt             time.Time       `json:"-"`
	UpdatedAt             time.Time       `json:"-"`
}

// Offer is a promotional bundle priced at a discount off its original price
type Offer struct {
	ID                    string          `gorm:"primaryKey;size:64" json:"id"`
	Title                 string          `gorm:"not null;size:255" json:"title"`
	Description           string          `gorm:"type:text" json:"description"`
	DetailPageDescription string          `gorm:"type:text" json:"detailPageDescription,omitempty"`
	Image                 string          `gorm:"type:text" json:"image"`
	Discount              decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount"`
	OriginalPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"originalPrice"`
	Active                bool            `gorm:"not null;index" json:"active"`
	CreatedAt             time.Time       `json:"-"`
	UpdatedAt             time.Time       `json:"-"`
}

// TableName overrides
func (MenuItem) TableName() string { return "menu_items" }
func (Offer) TableName() string    { return "offers" }

// EffectivePrice is originalPrice * (1 - discount/100), unrounded
func (o Offer) EffectivePrice() decimal.Decimal {
	return o.OriginalPrice.Mul(decimal.NewFromInt(1).Sub(o.Discount.Div(hundred)))
}

// Validate checks the fields a new menu item must carry
func (m *MenuItem) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalid)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return checkAmount("price", m.Price)
}

// Validate checks the fields a new offer must carry
func (o *Offer) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalid)
	}
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	return validateOfferPricing(o.Discount, o.OriginalPrice)
}

func validateOfferPricing(discount, originalPrice decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalid)
	}
	if !hasCents(discount) {
		return fmt.Errorf("%w: discount allows at most two decimal places", ErrInvalid)
	}
	return checkAmount("originalPrice", originalPrice)
}

// checkAmount rejects negative money and anything finer than a cent, which
// the numeric(12,2) columns would round away on write
func checkAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, field)
	}
	if !hasCents(d) {
		return fmt.Errorf("%w: %s allows at most two decimal places", ErrInvalid, field)
	}
	return nil
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// MenuItemPatch is a partial update, nil fields keep their stored value
type MenuItemPatch struct {
	Name                  *string          `json:"name"`
	Description           *string          `json:"description"`
	DetailPageDescription *string          `json:"detailPageDescription"`
	Price                 *decimal.Decimal `json:"price"`
	Image                 *string          `json:"image"`
	Category              *string          `json:"category"`
}

func (p MenuItemPatch) updates() (map[string]interface{}, error) {
	u := map[string]interface{}{}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalid)
		}
		u["name"] = *p.Name
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	if p.DetailPageDescription != nil {
		u["detail_page_description"] = *p.DetailPageDescription
	}
	if p.Price != nil {
		if err := checkAmount("price", *p.Price); err != nil {
			return nil, err
		}
		u["price"] = *p.Price
	}
	if p.Image != nil {
		u["image"] = *p.Image
	}
	if p.Category != nil {
		u["category"] = *p.Category
	}
	return u, nil
}

// OfferPatch is a partial update, nil fields keep their stored value
type OfferPatch struct {
	Title                 *string          `json:"title"`
	Description           *string          `json:"description"`
	DetailPageDescription *string          `json:"detailPageDescription"`
	Image                 *string          `json:"image"`
	Discount              *decimal.Decimal `json:"discount"`
	OriginalPrice         *decimal.Decimal `json:"originalPrice"`
	Active                *bool            `json:"active"`
}

func (p OfferPatch) updates() (map[string]interface{}, error) {
	u := map[string]interface{}{}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalid)
		}
		u["title"] = *p.Title
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	if p.DetailPageDescription != nil {
		u["detail_page_description"] = *p.DetailPageDescription
	}
	if p.Image != nil {
		u["image"] = *p.Image
	}
	if p.Discount != nil {
		if err := validateOfferPricing(*p.Discount, decimal.Zero); err != nil {
			return nil, err
		}
		u["discount"] = *p.Discount
	}
	if p.OriginalPrice != nil {
		if err := validateOfferPricing(decimal.Zero, *p.OriginalPrice); err != nil {
			return nil, err
		}
		u["original_price"] = *p.OriginalPrice
	}
	if p.Active != nil {
		u["active"] = *p.Active
	}
	return u, nil
}
