// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// AdminHandler handles admin login, password and dashboard endpoints
type AdminHandler struct {
	admins    *admin.Service
	gate      *admin.Gate
	analytics *analytics.Service
	log       logrus.FieldLogger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admins *admin.Service, gate *admin.Gate, stats *analytics.Service, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{admins: admins, gate: gate, analytics: stats, log: log}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	resp, err := h.admins.Login(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.admins.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session handles GET /admin/session
func (h *AdminHandler) Session(c *gin.Context) {
	ok, err := h.gate.IsAdmin(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": ok})
}

// UpdatePassword handles PUT /admin/update-password
func (h *AdminHandler) UpdatePassword(c *gin.Context) {
	var req admin.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.admins.UpdatePassword(c.Request.Context(), req); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.analytics.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
