// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// CatalogService is the menu item and offer store
type CatalogService interface {
	ListMenuItems(ctx context.Context) ([]catalog.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*catalog.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *catalog.MenuItem) error
	UpdateMenuItem(ctx context.Context, id string, patch catalog.MenuItemPatch) (int64, error)
	DeleteMenuItem(ctx context.Context, id string) (int64, error)

	ListOffers(ctx context.Context, activeOnly bool) ([]catalog.Offer, error)
	GetOffer(ctx context.Context, id string) (*catalog.Offer, error)
	CreateOffer(ctx context.Context, offer *catalog.Offer) error
	UpdateOffer(ctx context.Context, id string, patch catalog.OfferPatch) (int64, error)
	DeleteOffer(ctx context.Context, id string) (int64, error)
}

// CatalogHandler handles menu item and offer endpoints
type CatalogHandler struct {
	catalog CatalogService
	log     logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{catalog: svc, log: log}
}

// ListMenuItems handles GET /menu-items
func (h *CatalogHandler) ListMenuItems(c *gin.Context) {
	items, err := h.catalog.ListMenuItems(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetMenuItem handles GET /menu-items/:id
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	item, err := h.catalog.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// CreateMenuItem handles POST /menu-items
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var item catalog.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.catalog.CreateMenuItem(c.Request.Context(), &item); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item created", "id": item.ID})
}

// UpdateMenuItem handles PUT /menu-items/:id; absent fields keep their values
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	var patch catalog.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	n, err := h.catalog.UpdateMenuItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "changes": n})
}

// DeleteMenuItem handles DELETE /menu-items/:id
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	n, err := h.catalog.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "changes": n})
}

// ListOffers handles GET /offers[?active=true]
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	offers, err := h.catalog.ListOffers(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": offers})
}

// GetOffer handles GET /offers/:id
func (h *CatalogHandler) GetOffer(c *gin.Context) {
	offer, err := h.catalog.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": offer})
}

// CreateOffer handles POST /offers
func (h *CatalogHandler) CreateOffer(c *gin.Context) {
	var offer catalog.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.catalog.CreateOffer(c.Request.Context(), &offer); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer created", "id": offer.ID})
}

// UpdateOffer handles PUT /offers/:id
func (h *CatalogHandler) UpdateOffer(c *gin.Context) {
	var patch catalog.OfferPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	n, err := h.catalog.UpdateOffer(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer updated", "changes": n})
}

// DeleteOffer handles DELETE /offers/:id
func (h *CatalogHandler) DeleteOffer(c *gin.Context) {
	n, err := h.catalog.DeleteOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted", "changes": n})
}
