package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulseboard-analytics-core/internal/application"
	apiinfra "pulseboard-analytics-core/internal/infrastructure/api"
	authinfra "pulseboard-analytics-core/internal/infrastructure/auth"
	"pulseboard-analytics-core/internal/infrastructure/cache"
	"pulseboard-analytics-core/internal/infrastructure/encryption"
	"pulseboard-analytics-core/internal/infrastructure/meta"
	"pulseboard-analytics-core/internal/infrastructure/metrics"
	"pulseboard-analytics-core/internal/infrastructure/pubsub"
	"pulseboard-analytics-core/internal/infrastructure/repository"
	"pulseboard-analytics-core/internal/infrastructure/scheduler"
	shopifyinfra "pulseboard-analytics-core/internal/infrastructure/shopify"

	securitymiddleware "pulseboard-analytics-core/internal/infrastructure/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tokenTTL matches the 30-day sessions the dashboard front end expects
const tokenTTL = 30 * 24 * time.Hour

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := getenv("MONGODB_URI", "mongodb://localhost:27017")
	redisAddr := getenv("REDIS_ADDR", "localhost:6379")

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(getenv("MONGODB_DATABASE", "pulseboard"))

	// Connect to Redis (dashboard/status cache)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	// Required secrets
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable is required")
	}

	// Initialize infrastructure (implementations)
	vault, err := encryption.NewService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	tokenService, err := authinfra.NewTokenService(jwtSecret, tokenTTL, "pulseboard")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize token service")
	}

	// Initialize repositories
	userRepo := repository.NewMongoUserRepository(db)
	workspaceRepo := repository.NewMongoWorkspaceRepository(db)
	costRepo := repository.NewMongoCostRepository(db)
	integrationRepo := repository.NewMongoIntegrationRepository(db)
	snapshotRepo := repository.NewMongoSnapshotRepository(db)

	// Platform clients
	metaClient := meta.NewClient(os.Getenv("META_APP_ID"), os.Getenv("META_APP_SECRET"), logger)
	storeClient := shopifyinfra.NewClient(os.Getenv("SHOPIFY_API_KEY"), os.Getenv("SHOPIFY_API_SECRET"), logger)

	// Observability and background plumbing
	syncMetrics := metrics.NewSyncMetrics(prometheus.DefaultRegisterer)
	taskRunner := application.NewTaskRunner(logger)
	redisCache := cache.NewRedisCache(redisClient)
	syncEvents := pubsub.NewSyncEventBus(logger)

	// Initialize application services
	syncService := application.NewSyncService(
		integrationRepo,
		snapshotRepo,
		vault,
		metaClient,
		storeClient,
		syncMetrics,
		syncEvents,
		logger,
	)

	integrationService := application.NewIntegrationService(
		integrationRepo,
		vault,
		metaClient,
		storeClient,
		syncService,
		taskRunner,
		redisCache,
		logger,
	)

	authService := application.NewAuthService(userRepo, workspaceRepo, tokenService, logger)
	costService := application.NewCostService(costRepo, logger)
	dashboardService := application.NewDashboardService(snapshotRepo, redisCache, logger)

	// REST handlers
	handlers := apiinfra.Handlers{
		Auth:         apiinfra.NewAuthHandler(authService, logger),
		Costs:        apiinfra.NewCostHandler(costService, logger),
		Dashboard:    apiinfra.NewDashboardHandler(dashboardService, logger),
		Integrations: apiinfra.NewIntegrationHandler(integrationService, logger),
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation - public
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// API routes
	requireAuth := securitymiddleware.RequireAuth(tokenService, userRepo, logger)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Auth.Register)
		r.Post("/auth/login", handlers.Auth.Login)

		// Everything below requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", handlers.Auth.Me)

			r.Get("/metrics", handlers.Dashboard.Main)
			r.Get("/metrics/ads", handlers.Dashboard.Ads)
			r.Get("/metrics/website", handlers.Dashboard.Website)

			r.Get("/costs", handlers.Costs.List)
			r.Post("/costs", handlers.Costs.Create)
			r.Delete("/costs/{id}", handlers.Costs.Delete)

			r.Get("/integrations/status", handlers.Integrations.Status)
			r.Post("/integrations/meta/connect", handlers.Integrations.ConnectMeta)
			r.Post("/integrations/shopify/connect", handlers.Integrations.ConnectShopify)
			r.Post("/integrations/{platform}/disconnect", handlers.Integrations.Disconnect)
		})
	})

	// Scheduled sync of all active integrations
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fresh snapshots make cached dashboard payloads stale
	go func() {
		sub := syncEvents.Subscribe(ctx, nil)
		for event := range sub.Events {
			dashboardService.InvalidateWorkspace(context.Background(), event.WorkspaceID)
		}
	}()

	syncInterval := 6 * time.Hour
	if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			syncInterval = parsed
		} else {
			logger.Warn().Str("value", raw).Msg("Invalid SYNC_INTERVAL, using default")
		}
	}
	go scheduler.New(syncService, syncInterval, logger).Run(ctx)

	port := getenv("PORT", "8080")

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Server shutdown failed")
		}
		taskRunner.Wait()
	}()

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
