package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/internal/donations"
	"github.com/sahana-dev/daansetu/internal/fraud"
	"github.com/sahana-dev/daansetu/internal/users"
	"github.com/sahana-dev/daansetu/internal/withdrawals"
	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/config"
	"github.com/sahana-dev/daansetu/pkg/database"
	"github.com/sahana-dev/daansetu/pkg/logger"
	"github.com/sahana-dev/daansetu/pkg/middleware"
	"github.com/sahana-dev/daansetu/pkg/ratelimit"
	"github.com/sahana-dev/daansetu/pkg/redis"
	"github.com/sahana-dev/daansetu/pkg/validation"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("api")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Apply pending schema migrations
	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL database")

	// Connect to Redis. The fraud history cache degrades to direct
	// database reads without it, so Redis being down is not fatal.
	var redisClient *redis.Client
	if rc, err := redis.NewRedisClient(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, fraud history cache disabled")
	} else {
		redisClient = rc
		defer redisClient.Close()
		logger.Info("Connected to Redis")
	}

	// Fraud engine
	historyRepo := fraud.NewRepository(db)
	var history fraud.HistoryProvider = historyRepo
	var invalidator donations.HistoryInvalidator = fraud.NoopInvalidator{}
	if redisClient != nil {
		cached := fraud.NewCachedHistory(historyRepo, redisClient)
		history = cached
		invalidator = cached
	}
	detector := fraud.NewDetector(history, &cfg.Fraud)

	// Services and handlers
	userRepo := users.NewRepository(db)
	userService := users.NewService(userRepo, &cfg.JWT)
	userHandler := users.NewHandler(userService)

	credits := donations.NewCreditCalculator(&cfg.Credits)
	donationRepo := donations.NewRepository(db)
	donationService := donations.NewService(donationRepo, detector, credits, invalidator)
	donationHandler := donations.NewHandler(donationService)

	withdrawalRepo := withdrawals.NewRepository(db)
	withdrawalService := withdrawals.NewService(withdrawalRepo)
	withdrawalHandler := withdrawals.NewHandler(withdrawalService)

	fraudHandler := fraud.NewHandler(detector)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.RegisterGinValidators()
	router := gin.New()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.SecurityHeaders())

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, version, map[string]common.DependencyCheck{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.Ping(ctx)
		},
		"redis": func() error {
			if redisClient == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiting on the unauthenticated auth endpoints. Disabled when
	// Redis is down or limiting is switched off.
	var limiterCounter ratelimit.Counter
	if redisClient != nil && cfg.RateLimit.Enabled {
		limiterCounter = redisClient
	}
	limiter := ratelimit.NewLimiter(limiterCounter, &cfg.RateLimit)

	// API routes
	api := router.Group("/api/v1")
	{
		public := api.Group("")
		public.Use(limiter.Middleware())
		userHandler.RegisterRoutes(public)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		{
			userHandler.RegisterProtectedRoutes(authed)
			donationHandler.RegisterRoutes(authed)
			withdrawalHandler.RegisterRoutes(authed)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.AdminOnly())
		{
			donationHandler.RegisterAdminRoutes(admin)
			withdrawalHandler.RegisterAdminRoutes(admin)
			fraudHandler.RegisterRoutes(admin)
		}
	}

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Info("DaanSetu API starting on " + addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
