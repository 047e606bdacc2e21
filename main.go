package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack-api/internal/cache"
	"fintrack-api/internal/config"
	"fintrack-api/internal/controllers"
	"fintrack-api/internal/database"
	"fintrack-api/internal/jwt"
	"fintrack-api/internal/repository"
	"fintrack-api/internal/router"
	"fintrack-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// Fail before touching the database if tokens cannot be signed
	jwtService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn.Duration())
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnectRetries:  cfg.DBConnectRetries,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := database.RunMigrations(ctx, db); err != nil {
		db.Close()
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unset or unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, cfg.DBQueryTimeout)
	categoryRepo := repository.NewCategoryRepository(db, cfg.DBQueryTimeout)
	transactionRepo := repository.NewTransactionRepository(db, cfg.DBQueryTimeout)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient, cfg.CategoryCacheTTL)
	transactionService := service.NewTransactionService(transactionRepo)

	routes := &router.Router{
		AuthController:        controllers.NewAuthController(authService),
		CategoryController:    controllers.NewCategoryController(categoryService),
		TransactionController: controllers.NewTransactionController(transactionService),
		Tokens:                jwtService,
		CORSOrigins:           cfg.CORSOrigins,
		TrustedProxies:        cfg.TrustedProxies,
		RateLimitRPS:          cfg.RateLimitRPS,
		RateLimitBurst:        cfg.RateLimitBurst,
		RateLimitAuthRPS:      cfg.RateLimitAuthRPS,
		RateLimitAuthBurst:    cfg.RateLimitAuthBurst,
	}

	engine, err := routes.Engine(ctx)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	err = serve(ctx, srv)
	err = multierr.Append(err, db.Close())
	if cacheClient != nil {
		err = multierr.Append(err, cacheClient.Close())
	}
	if err != nil {
		log.Fatalf("Server stopped with errors: %v", err)
	}
	log.Println("Server stopped")
}

// serve runs srv until ctx is done or serving fails, then shuts it down. A
// serve failure such as a taken port is returned with any shutdown error.
func serve(ctx context.Context, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Println("Shutting down server...")
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return multierr.Append(runErr, srv.Shutdown(shutdownCtx))
}
