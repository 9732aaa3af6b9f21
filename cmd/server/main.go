package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamgrid/internal/core/layout"
	"streamgrid/internal/core/ports"
	"streamgrid/internal/core/services"
	httphandlers "streamgrid/internal/handlers/http"
	"streamgrid/internal/infrastructure/distributed"
	"streamgrid/internal/infrastructure/middleware"
	"streamgrid/internal/infrastructure/monitoring"
	"streamgrid/internal/infrastructure/platforms"
	repositories "streamgrid/internal/infrastructure/repositories"
	"streamgrid/pkg/cache"
	"streamgrid/pkg/circuitbreaker"
	"streamgrid/pkg/config"
	"streamgrid/pkg/logger"
	"streamgrid/pkg/retry"
	"streamgrid/pkg/tracing"
	"streamgrid/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/streamgrid/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		// Fallback to defaults if config cannot be loaded
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()
	ctxLog := logger.NewContextLogger(zapLogger)

	// Initialize tracing
	tracerProvider, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "streamgrid-server",
		JaegerURL:   cfg.Tracing.JaegerURL,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}
	defer tracerProvider.Shutdown(context.Background())

	// Initialize repository factory
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}
	defer repoFactory.Close()

	sessionRepo := repoFactory.CreateSessionRepository()
	prefRepo := repoFactory.CreatePreferenceRepository()

	// Event bus: in-process always, cross-instance when Redis is enabled
	eventBus := distributed.NewEventBus(repoFactory.RedisClient(), utils.GenerateRequestID(), log)
	defer eventBus.Close()

	layoutOpts := layout.Options{
		Spacing:        cfg.Layout.Spacing,
		PiPScale:       cfg.Layout.PiPScale,
		PiPMargin:      cfg.Layout.PiPMargin,
		FocusStripFrac: cfg.Layout.FocusStripFrac,
		MaxPiPOverlays: cfg.Layout.MaxPiPOverlays,
		MaxFocusThumbs: cfg.Layout.MaxFocusThumbs,
	}

	// Initialize services
	metricsService := services.NewMetricsService()
	monitoring.NewPrometheusCollector(metricsService)
	sessionService := services.NewSessionService(sessionRepo, eventBus, metricsService, services.SessionConfig{
		MaxRetries:    cfg.Slots.MaxRetries,
		DefaultSlots:  cfg.Slots.DefaultPerGrid,
		MaxSlots:      cfg.Slots.MaxPerSession,
		LayoutOptions: layoutOpts,
	}, log)
	audioService := services.NewAudioService(sessionRepo, eventBus, metricsService, log)
	layoutService := services.NewLayoutService(sessionRepo, layoutOpts, cfg.Platforms.EmbedParentHost)
	authService := services.NewAuthService(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Platform metadata clients behind cache, retry and circuit breakers
	clients := []ports.PlatformClient{
		platforms.NewTwitchClient(cfg.Platforms.Twitch.ClientID, cfg.Platforms.Twitch.ClientSecret, cfg.Resolver.RequestTimeout),
		platforms.NewYouTubeClient(cfg.Resolver.RequestTimeout),
		platforms.NewKickClient(cfg.Resolver.RequestTimeout),
		platforms.NewRumbleClient(cfg.Resolver.RequestTimeout),
	}

	resolveCache := cache.New(cfg.Resolver.CacheTTL)
	defer resolveCache.Stop()

	breakers := circuitbreaker.NewGroup(circuitbreaker.Config{
		FailureThreshold: cfg.Resolver.BreakerThreshold,
		SuccessThreshold: 2,
		Cooldown:         cfg.Resolver.BreakerCooldown,
		MaxHalfOpen:      1,
	})

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.Resolver.RetryAttempts

	resolveService := services.NewResolveService(clients, resolveCache, breakers, retryCfg, metricsService, log)

	// Initialize HTTP handlers
	authHandler := httphandlers.NewAuthHandler(authService, cfg.Auth.AccessTokenTTL)
	sessionHandler := httphandlers.NewSessionHandler(sessionService, audioService, layoutService, resolveService)
	prefHandler := httphandlers.NewPreferenceHandler(prefRepo)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware(ctxLog))
	router.Use(middleware.ErrorHandlerMiddleware(ctxLog))
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}

	// Setup auth routes (public)
	authHandler.SetupRoutes(router)

	// Setup session routes with authentication
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))
	{
		sessionHandler.SetupRoutes(api)
		prefHandler.SetupRoutes(api)
	}

	// Health check endpoint
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddCheck("repositories", repoFactory.HealthCheck, 2*time.Second)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		code := 200
		if status.Status != "healthy" {
			code = 503
		}
		c.JSON(code, status)
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting StreamGrid API server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signals or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down StreamGrid API server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server gracefully
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		// Force close if graceful shutdown fails
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	// Close repository factory
	if err := repoFactory.Close(); err != nil {
		log.Errorw("Error closing repository factory", "error", err)
	}

	log.Info("StreamGrid API server stopped")
}
