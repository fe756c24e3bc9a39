// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints for the current session
type CartHandler struct {
	carts *cart.Service
	log   logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Service, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

// AddToCartRequest names the menu item or offer to add
type AddToCartRequest struct {
	Kind string `json:"kind" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// UpdateCartItemRequest overwrites a line's quantity; zero or less removes it
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartLineView struct {
	Kind      cart.Kind         `json:"kind"`
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	UnitPrice decimal.Decimal   `json:"unitPrice"`
	Quantity  int               `json:"quantity"`
	LineTotal decimal.Decimal   `json:"lineTotal"`
	MenuItem  *catalog.MenuItem `json:"menuItem,omitempty"`
	Offer     *catalog.Offer    `json:"offer,omitempty"`
}

type cartView struct {
	Items     []cartLineView  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func newCartView(c *cart.Cart) cartView {
	lines := c.Lines()
	v := cartView{
		Items:     make([]cartLineView, 0, len(lines)),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
	for _, l := range lines {
		lv := cartLineView{
			Kind:      l.Entry.Kind(),
			ID:        l.Entry.EntryID(),
			Name:      l.Entry.Title(),
			UnitPrice: l.Entry.UnitPrice(),
			Quantity:  l.Quantity,
			LineTotal: c.LineTotal(l),
		}
		switch e := l.Entry.(type) {
		case cart.CatalogEntry:
			item := e.Item
			lv.MenuItem = &item
		case cart.OfferEntry:
			offer := e.Offer
			lv.Offer = &offer
		}
		v.Items = append(v.Items, lv)
	}
	return v
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ct, err := h.carts.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newCartView(ct)})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	kind, err := cart.ParseKind(req.Kind)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ct, err := h.carts.AddItem(c.Request.Context(), middleware.SessionID(c), kind, req.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    newCartView(ct),
	})
}

// UpdateCartItem handles PUT /cart/items/:kind/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	kind, err := cart.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ct, err := h.carts.UpdateQuantity(c.Request.Context(), middleware.SessionID(c), kind, c.Param("id"), *req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    newCartView(ct),
	})
}

// RemoveFromCart handles DELETE /cart/items/:kind/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	kind, err := cart.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ct, err := h.carts.RemoveItem(c.Request.Context(), middleware.SessionID(c), kind, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    newCartView(ct),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    newCartView(cart.New()),
	})
}
