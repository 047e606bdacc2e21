package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"fintrack-api/internal/controllers"
	"fintrack-api/internal/middleware"
)

// Router holds everything the HTTP surface needs.
type Router struct {
	AuthController        *controllers.AuthController
	CategoryController    *controllers.CategoryController
	TransactionController *controllers.TransactionController
	Tokens                middleware.TokenValidator
	CORSOrigins           []string
	TrustedProxies        []string // Proxies whose X-Forwarded-For is believed; none by default

	RateLimitRPS       float64
	RateLimitBurst     int
	RateLimitAuthRPS   float64
	RateLimitAuthBurst int
}

// Engine builds the gin engine. ctx bounds the rate limiter cleanup loops.
func (r *Router) Engine(ctx context.Context) (*gin.Engine, error) {
	controllers.RegisterValidation()

	engine := gin.New()
	// Unmatched paths, trailing slashes included, get the JSON 404.
	engine.RedirectTrailingSlash = false
	if err := engine.SetTrustedProxies(r.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(r.CORSOrigins),
	)

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	generalLimiter := middleware.NewRateLimiter(ctx, rate.Limit(r.RateLimitRPS), r.RateLimitBurst)
	authLimiter := middleware.NewRateLimiter(ctx, rate.Limit(r.RateLimitAuthRPS), r.RateLimitAuthBurst)
	requireAuth := middleware.AuthMiddleware(r.Tokens)

	api := engine.Group("/api")
	api.Use(generalLimiter.LimitMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimiter.LimitMiddleware(), r.AuthController.Register)
			auth.POST("/login", authLimiter.LimitMiddleware(), r.AuthController.Login)
			auth.GET("/me", requireAuth, r.AuthController.Me)
		}

		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.GET("", r.CategoryController.List)
			categories.POST("", r.CategoryController.Create)
			categories.DELETE("/:id", r.CategoryController.Delete)
		}

		transactions := api.Group("/transactions")
		transactions.Use(requireAuth)
		{
			transactions.GET("", r.TransactionController.List)
			transactions.POST("", r.TransactionController.Create)
			transactions.DELETE("/:id", r.TransactionController.Delete)
		}
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return engine, nil
}
