package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transit-dashboard/analytics"
	"transit-dashboard/auth"
	"transit-dashboard/cache"
	"transit-dashboard/config"
	"transit-dashboard/database"
	"transit-dashboard/handler"
	appLogger "transit-dashboard/logger"
	"transit-dashboard/metrics"
	"transit-dashboard/middleware"
	"transit-dashboard/realtime"
	redisClient "transit-dashboard/redis"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Load configuration
	cfg := config.MustLoadConfig()

	logCloser, err := appLogger.Configure(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Logging.File).Msg("Failed to open log file")
	}
	log.Info().Msg("Configuration loaded successfully")

	// Open the transit activity store
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	// Initialize Redis client (nil when disabled)
	rdb, err := redisClient.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis")
	}
	if rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if latency, err := redisClient.Ping(ctx, rdb); err == nil {
			log.Debug().Dur("latency", latency).Msg("Redis round trip")
		}
		cancel()
	}

	// Initialize cache (if enabled)
	var cacheClient *cache.Cache
	if cfg.Cache.Enabled {
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cache")
		}
	} else {
		log.Info().Msg("Cache disabled in configuration")
	}
	snapshots := cache.NewSnapshotCache(cacheClient, rdb)

	// Request metrics feed the system health section
	collector := metrics.NewCollector()

	service := analytics.NewService(db, cfg.Analytics, analytics.WithHealthSources(analytics.HealthSources{
		Cache:        snapshots,
		Requests:     collector,
		DatabasePath: cfg.Database.Path,
		LogPath:      cfg.Logging.File,
		BackupPath:   cfg.Database.BackupPath,
	}))

	// Live real-time stats
	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := realtime.NewHub(service,
		time.Duration(cfg.Analytics.RealtimeIntervalSeconds)*time.Second,
		time.Duration(cfg.Analytics.QueryTimeout)*time.Second,
	)
	go hub.Run(hubCtx)

	// Admin authentication
	var jwtManager *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtManager, err = auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
	}
	adminAuth := middleware.NewAdminAuth(jwtManager, cfg.Auth.AdminAPIKeyHash, cfg.Auth.Enabled)
	log.Info().
		Bool("auth_enabled", cfg.Auth.Enabled).
		Bool("jwt_enabled", jwtManager != nil).
		Bool("api_key_enabled", cfg.Auth.AdminAPIKeyHash != "").
		Msg("Admin authentication initialized")

	// Create handler with dependency injection
	dashboardHandler := handler.NewDashboardHandler(service, db, snapshots, hub, cfg)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	requestLogger := middleware.NewRequestLogger(collector)

	r.Use(requestLogger.Log)
	r.Use(rateLimiter.Limit)

	// Register routes
	dashboardHandler.Register(r, adminAuth.Protect)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.WebServer.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Admin-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag", "X-Request-ID", "Retry-After"},
		MaxAge:           300,
	})

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      corsHandler.Handler(r),
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Str("scheme", cfg.WebServer.Scheme).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Disconnect websocket clients first; hijacked connections are not closed by Shutdown
	stopHub()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	snapshots.Close()

	// Close Redis connection
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	database.Close(db)

	log.Info().Msg("Server stopped gracefully")

	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
}
