package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"streamgrid/internal/core/services"
	"streamgrid/internal/infrastructure/distributed"
	repositories "streamgrid/internal/infrastructure/repositories"
	syncserver "streamgrid/internal/infrastructure/sync"
	"streamgrid/pkg/config"
	"streamgrid/pkg/logger"
	"streamgrid/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
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
		cfg = config.DefaultConfig()
	}

	zapLogger := logger.New(cfg.Logging.Level)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Shared session state: Redis in multi-instance deployments, memory otherwise
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}
	defer repoFactory.Close()

	sessionRepo := repoFactory.CreateSessionRepository()

	eventBus := distributed.NewEventBus(repoFactory.RedisClient(), utils.GenerateRequestID(), log)
	defer eventBus.Close()

	metricsService := services.NewMetricsService()
	sessionCfg := services.DefaultSessionConfig()
	sessionCfg.MaxRetries = cfg.Slots.MaxRetries
	sessionCfg.DefaultSlots = cfg.Slots.DefaultPerGrid
	sessionCfg.MaxSlots = cfg.Slots.MaxPerSession
	sessionService := services.NewSessionService(sessionRepo, eventBus, metricsService, sessionCfg, log)
	audioService := services.NewAudioService(sessionRepo, eventBus, metricsService, log)

	wsOpts := syncserver.DefaultOptions()
	wsOpts.PingInterval = cfg.Sync.PingInterval
	wsOpts.PongTimeout = cfg.Sync.PongTimeout
	if cfg.RateLimiting.Enabled {
		wsOpts.MessagesPerSecond = cfg.RateLimiting.WebSocket.MessagesPerSecond
		wsOpts.Burst = cfg.RateLimiting.WebSocket.Burst
		wsOpts.MaxMessageSize = cfg.RateLimiting.WebSocket.MaxMessageSize
		wsOpts.MaxConnections = cfg.RateLimiting.WebSocket.MaxConcurrent
	}

	wsServer := syncserver.NewWebSocketServer(sessionService, audioService, wsOpts, log)

	// Every event, local or from another instance, goes out to viewers
	eventBus.Subscribe(wsServer.HandleEvent)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if repoFactory.RedisClient() != nil {
		go func() {
			if err := eventBus.Listen(ctx); err != nil && err != context.Canceled {
				log.Errorw("event bus listener stopped", "error", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsServer.HandleWebSocket)
	mux.HandleFunc("/health", wsServer.HealthCheck)

	if cfg.Monitoring.PrometheusEnabled {
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "streamgrid_sync_connected_clients",
				Help: "Number of WebSocket clients currently connected.",
			},
			func() float64 { return float64(wsServer.TotalConnections()) },
		))
		mux.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{
		Addr:    cfg.Sync.Address,
		Handler: mux,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting StreamGrid sync server on %s", cfg.Sync.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Sync.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
	}

	log.Info("StreamGrid sync server stopped")
}
