package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/radnom/storefront-api/docs"
	"github.com/radnom/storefront-api/internal/api/handler"
	"github.com/radnom/storefront-api/internal/api/middleware"
	"github.com/radnom/storefront-api/internal/core/domain"
	"github.com/radnom/storefront-api/internal/core/ports"
	"github.com/radnom/storefront-api/internal/core/service"
	"github.com/radnom/storefront-api/internal/infrastructure/config"
	mongodb "github.com/radnom/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/radnom/storefront-api/internal/infrastructure/db/redis"
)

// authRateLimit caps login/forgot-password style requests per client IP.
const authRateLimit = rate.Limit(10)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client, tokens ports.TokenService, mailQueue ports.MailQueue) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)

	authService := service.NewAuthService(userRepo, tokens, mailQueue,
		redisdb.NewResetThrottle(rdb),
		service.AuthServiceConfig{
			ResetBaseURL:    cfg.FrontendBaseURL,
			DebugResetLinks: !cfg.IsProduction(),
		}, log)
	productService := service.NewProductService(productRepo, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)

	authGate := middleware.Auth(tokens, userRepo, log)

	// --- Auth routes (public, rate limited) ---
	auth := e.Group("/api/auth")
	auth.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(authRateLimit)))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Catalog routes (browsing is public, inserts are admin only) ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/search", productHandler.Search)
	products.GET("/categories", productHandler.Categories)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authGate, middleware.RBAC(domain.RoleAdmin))

	// --- Cart routes (bearer token required) ---
	cart := e.Group("/api/cart", authGate)
	cart.GET("", cartHandler.Get)
	cart.GET("/items", cartHandler.Items)
	cart.GET("/count", cartHandler.Count)
	cart.GET("/total", cartHandler.Total)
	cart.POST("/add", cartHandler.Add)
	cart.PUT("/update", cartHandler.Update)
	cart.DELETE("/remove", cartHandler.Remove)
	cart.DELETE("/clear", cartHandler.Clear)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
