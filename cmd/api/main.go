package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/cache"
	"github.com/dihora04/djbook.in-sub000/internal/adapters/database"
	"github.com/dihora04/djbook.in-sub000/internal/adapters/events"
	"github.com/dihora04/djbook.in-sub000/internal/adapters/providers/geolocation"
	"github.com/dihora04/djbook.in-sub000/internal/adapters/search"
	"github.com/dihora04/djbook.in-sub000/internal/api/handlers"
	"github.com/dihora04/djbook.in-sub000/internal/api/routes"
	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/redis"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/typesense"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/observability"
	"github.com/dihora04/djbook.in-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; the server runs fine without a collector
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional: without it the server runs uncached and without
	// the event bus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, directory search falls back to PostgreSQL")
		typesenseClient = nil
	} else {
		log.Info().Msg("Typesense client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	} else {
		log.Info().Msg("event bus disabled (Redis not available)")
	}

	// Adapters

	baseDJAdapter := database.NewDJAdapter(pgClient)
	var djAdapter repositories.DJRepository
	if cacheProvider != nil {
		djAdapter = database.NewCachedDJAdapter(baseDJAdapter, cacheProvider)
		log.Info().Msg("dj adapter wrapped with caching layer")
	} else {
		djAdapter = baseDJAdapter
	}

	bookingAdapter := database.NewBookingAdapter(pgClient)
	calendarAdapter := database.NewCalendarAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)

	var searchRepo repositories.DJSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			log.Warn().Msg("GEOLOCATION_API_KEY is not set; using mock geolocation provider")
			geolocationProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		}
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	// Services

	clock := providers.SystemClock{}
	notificationService := services.NewNotificationService(eventBus, clock)
	bookingService := services.NewBookingService(bookingAdapter, calendarAdapter, djAdapter, notificationService, clock)
	availabilityService := services.NewAvailabilityService(calendarAdapter, cacheProvider, cfg.Directory.AvailabilityTTL, clock)
	directoryService := services.NewDirectoryService(djAdapter, searchRepo, cfg.Directory.DefaultRadiusKm)
	profileService := services.NewProfileService(userAdapter, djAdapter, searchRepo, geolocationProvider, clock)
	reviewService := services.NewReviewService(reviewAdapter, djAdapter, clock)

	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
		} else {
			log.Info().Msg("cache invalidation service started")
		}
	}

	// Handlers and router

	router := routes.NewRouter(
		handlers.NewBookingHandler(bookingService),
		handlers.NewCalendarHandler(availabilityService),
		handlers.NewDJHandler(directoryService),
		handlers.NewProfileHandler(profileService),
		handlers.NewAdminHandler(profileService),
		handlers.NewReviewHandler(reviewService),
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}
	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Info().Msg("server stopped")
}
