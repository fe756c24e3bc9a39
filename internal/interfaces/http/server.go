// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
	"github.com/your-org/storefront-backend/internal/infrastructure/messaging"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	log         *logrus.Logger
	gin         *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	store       kv.Store
	publisher   messaging.Publisher
	startedAt   time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, publisher messaging.Publisher) *Server {
	return &Server{
		config:      cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		store:       kv.NewRedisStore(redisClient),
		publisher:   publisher,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()
	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	s.startedAt = time.Now()

	s.log.WithFields(logrus.Fields{
		"port": s.config.Server.Port,
		"skin": s.config.Storefront.Skin,
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.log))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders(s.config.App.Name))
	s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.config.Storefront.KeyPrefix, s.redisClient, s.log))
	s.gin.Use(middleware.RequestSizeLimit(s.config.Server.MaxRequestBytes))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes builds the services and registers every route
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	cfg := s.config
	keys := kv.NewKeys(cfg.Storefront.KeyPrefix)

	catalogService := catalog.NewService(s.db, s.log)
	cartService := cart.NewService(s.store, catalogService, keys, cfg.Storefront.SessionTTL, s.log)
	orderService := order.NewService(s.store, cartService, keys, s.log)
	stripeService := payment.NewStripeService(cfg, s.log)
	checkoutService := checkout.NewService(checkout.Deps{
		Store:     s.store,
		Keys:      keys,
		Carts:     cartService,
		Orders:    orderService,
		Payments:  stripeService,
		Mailer:    email.NewEmailService(cfg, s.log),
		Publisher: s.publisher,
		InfoTTL:   cfg.Storefront.CustomerInfoTTL,
		Log:       s.log,
	})
	orderService.SetStatusListener(checkoutService)

	jwtManager := auth.NewJWTManager(cfg)
	gate := admin.NewGate(s.store, keys)
	adminService := admin.NewService(admin.NewGormRepository(s.db), auth.NewPasswordManager(cfg), jwtManager, gate, s.log)
	analyticsService := analytics.NewService(catalogService, orderService, s.log)

	h := routes.Handlers{
		Catalog:  handlers.NewCatalogHandler(catalogService, s.log),
		Cart:     handlers.NewCartHandler(cartService, s.log),
		Checkout: handlers.NewCheckoutHandler(checkoutService, stripeService, s.log),
		Order:    handlers.NewOrderHandler(orderService, pdf.NewService(cfg), s.log),
		Admin:    handlers.NewAdminHandler(adminService, gate, analyticsService, s.log),
	}

	api := s.gin.Group("/api")
	api.Use(middleware.Session(cfg.Storefront.SessionTTL, cfg.IsProduction()))
	routes.SetupRoutes(api, h, middleware.AdminGate(jwtManager, gate, cfg.Security.AdminTokenRequired, s.log))

	if cfg.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     cfg.App.Name,
				"version":     cfg.App.Version,
				"environment": cfg.App.Environment,
				"skin":        cfg.Storefront.Skin,
				"health":      "/health",
				"endpoints": gin.H{
					"menu":     "/api/menu-items",
					"offers":   "/api/offers",
					"cart":     "/api/cart",
					"checkout": "/api/checkout",
					"orders":   "/api/orders",
					"admin":    "/api/admin",
				},
			})
		})
	}
}

// healthCheck reports liveness
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
		"uptime":      time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// readinessCheck pings the database and the session store
func (s *Server) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		s.log.WithError(err).Warn("readiness: database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database ping failed",
		})
		return
	}

	if err := s.store.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("readiness: session store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "redis ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}
