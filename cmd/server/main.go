package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/shopcore/backend/internal/application/cart"
	couponapp "github.com/shopcore/backend/internal/application/coupon"
	orderapp "github.com/shopcore/backend/internal/application/order"
	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/infrastructure/auth"
	"github.com/shopcore/backend/internal/infrastructure/cache"
	"github.com/shopcore/backend/internal/infrastructure/config"
	"github.com/shopcore/backend/internal/infrastructure/event"
	"github.com/shopcore/backend/internal/infrastructure/logger"
	"github.com/shopcore/backend/internal/infrastructure/notification"
	"github.com/shopcore/backend/internal/infrastructure/payment"
	"github.com/shopcore/backend/internal/infrastructure/persistence"
	"github.com/shopcore/backend/internal/infrastructure/persistence/models"
	"github.com/shopcore/backend/internal/infrastructure/pricing"
	"github.com/shopcore/backend/internal/interfaces/http/handler"
	"github.com/shopcore/backend/internal/interfaces/http/middleware"
	"github.com/shopcore/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Shopcore Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Postgres schemas come from cmd/migrate; the sqlite dev store is
	// schema-managed here since golang-migrate only targets postgres
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(
			&models.ProductModel{},
			&models.StockItemModel{},
			&models.CouponModel{},
			&models.OrderModel{},
			&models.OrderItemModel{},
		); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Cart store: Redis when configured, in-process otherwise
	var cartStore cart.Repository
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisCartStore(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cartStore = redisStore
		log.Info("Cart store: redis", zap.String("addr", cfg.Redis.RedisAddr()))
	} else {
		memStore := cache.NewInMemoryCartStore(cfg.Redis.CartTTL)
		defer func() {
			_ = memStore.Close()
		}()
		cartStore = memStore
		log.Info("Cart store: in-memory", zap.Duration("ttl", cfg.Redis.CartTTL))
	}

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	catalog := persistence.NewGormCatalog(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Payment gateways and pricing policy from config
	gateways, err := payment.NewGatewayRegistryFromConfig(&cfg.Payment)
	if err != nil {
		log.Fatal("Failed to configure payment gateways", zap.Error(err))
	}
	pricingPolicy, err := pricing.NewStandardPolicy(&cfg.Pricing)
	if err != nil {
		log.Fatal("Failed to configure pricing policy", zap.Error(err))
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	notifier := notification.NewHTTPNotifier(&cfg.Notification, log)

	// Status change -> customer notification
	statusChangedHandler := orderapp.NewStatusChangedHandler(orderRepo, notifier, log)
	eventBus.Subscribe(statusChangedHandler)

	// Cancellation -> refund, restock and notification
	cancelledHandler := orderapp.NewCancelledHandler(orderRepo, stockRepo, gateways, notifier, log)
	eventBus.Subscribe(cancelledHandler)

	log.Info("Event handlers registered",
		zap.Strings("status_changed_events", statusChangedHandler.EventTypes()),
		zap.Strings("cancelled_events", cancelledHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	cartService := cartapp.NewCartService(cartStore, catalog, stockRepo)
	couponService := couponapp.NewCouponService(couponRepo)
	orderService := orderapp.NewOrderService(
		txScope,
		orderRepo,
		cartStore,
		couponService,
		pricingPolicy,
		gateways,
		eventBus,
		log,
	)

	// Token service for request authentication
	tokens := auth.NewTokenService(cfg.JWT)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService)
	couponHandler := handler.NewCouponHandler(couponService)
	orderHandler := handler.NewOrderHandler(orderService)
	systemHandler := handler.NewSystemHandler(db, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning, unauthenticated)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication on all API routes except the public endpoints
	authConfig := middleware.AuthConfig{
		Tokens: tokens,
		SkipPaths: []string{
			"/api/v1/system/info",
			"/api/v1/system/health",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthWithConfig(authConfig))

	// Cart routes (per-customer, owner derived from the token)
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:id", cartHandler.UpdateQuantity)
	cartRoutes.DELETE("/items/:id", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.POST("/buy-now", cartHandler.BuyNow)

	// Order routes
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Place)
	orderRoutes.GET("/mine", orderHandler.ListMine)
	orderRoutes.GET("/number/:number", orderHandler.GetByNumber)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Coupon routes (validation is customer-facing, management is admin)
	couponRoutes := router.NewDomainGroup("coupons", "/coupons")
	couponRoutes.POST("/validate", couponHandler.Validate)

	// Admin routes
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	adminRoutes.GET("/orders", orderHandler.List)
	adminRoutes.GET("/orders/summary", orderHandler.StatusSummary)
	adminRoutes.POST("/orders/:id/transition", orderHandler.Transition)
	adminRoutes.POST("/coupons", couponHandler.Create)
	adminRoutes.GET("/coupons", couponHandler.List)
	adminRoutes.POST("/coupons/:id/activate", couponHandler.Activate)
	adminRoutes.POST("/coupons/:id/deactivate", couponHandler.Deactivate)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(cartRoutes).
		Register(orderRoutes).
		Register(couponRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
