// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
)

// Handlers groups every endpoint handler
type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Order    *handlers.OrderHandler
	Admin    *handlers.AdminHandler
}

// SetupRoutes registers the storefront API on rg. adminOnly guards catalog
// mutations and every order view that is not scoped to the caller's session.
func SetupRoutes(rg *gin.RouterGroup, h Handlers, adminOnly gin.HandlerFunc) {
	SetupCatalogRoutes(rg, h.Catalog, adminOnly)
	SetupCartRoutes(rg, h.Cart)
	SetupCheckoutRoutes(rg, h.Checkout)
	SetupOrderRoutes(rg, h.Order)
	SetupAdminRoutes(rg, h.Admin, h.Order, adminOnly)
}

// SetupCatalogRoutes sets up menu item and offer routes
func SetupCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler, adminOnly gin.HandlerFunc) {
	items := rg.Group("/menu-items")
	{
		items.GET("", h.ListMenuItems)
		items.GET("/:id", h.GetMenuItem)
		items.POST("", adminOnly, h.CreateMenuItem)
		items.PUT("/:id", adminOnly, h.UpdateMenuItem)
		items.DELETE("/:id", adminOnly, h.DeleteMenuItem)
	}

	offers := rg.Group("/offers")
	{
		offers.GET("", h.ListOffers)
		offers.GET("/:id", h.GetOffer)
		offers.POST("", adminOnly, h.CreateOffer)
		offers.PUT("/:id", adminOnly, h.UpdateOffer)
		offers.DELETE("/:id", adminOnly, h.DeleteOffer)
	}
}

// SetupCartRoutes sets up session cart routes
func SetupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.POST("/items", h.AddToCart)
		cart.PUT("/items/:kind/:id", h.UpdateCartItem)
		cart.DELETE("/items/:kind/:id", h.RemoveFromCart)
	}
}

// SetupCheckoutRoutes sets up the customer info and payment routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler) {
	rg.POST("/create-payment-intent", h.CreatePaymentIntent)

	checkout := rg.Group("/checkout")
	{
		checkout.GET("/customer", h.GetCustomer)
		checkout.POST("/customer", h.ConfirmCustomer)
		checkout.POST("/pay", h.PlaceOrder)
	}
}

// SetupOrderRoutes sets up the session's order routes
func SetupOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/receipt", h.DownloadReceipt)
	}
}

// SetupAdminRoutes sets up admin authentication and back-office routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *handlers.AdminHandler, orders *handlers.OrderHandler, adminOnly gin.HandlerFunc) {
	admin := rg.Group("/admin")
	{
		admin.POST("/login", h.Login)
		admin.POST("/logout", h.Logout)
		admin.GET("/session", h.Session)

		protected := admin.Group("")
		protected.Use(adminOnly)
		{
			protected.PUT("/update-password", h.UpdatePassword)
			protected.GET("/dashboard", h.Dashboard)
			protected.GET("/orders", orders.ListAllOrders)
			protected.PUT("/orders/:id/status", orders.UpdateOrderStatus)
		}
	}
}
