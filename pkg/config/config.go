package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address         string        `yaml:"address"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Sync struct {
		Address         string        `yaml:"address"`
		PingInterval    time.Duration `yaml:"ping_interval"`
		PongTimeout     time.Duration `yaml:"pong_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"sync"`

	Layout struct {
		Spacing        float64 `yaml:"spacing"`
		PiPScale       float64 `yaml:"pip_scale"`
		PiPMargin      float64 `yaml:"pip_margin"`
		FocusStripFrac float64 `yaml:"focus_strip_frac"`
		MaxPiPOverlays int     `yaml:"max_pip_overlays"`
		MaxFocusThumbs int     `yaml:"max_focus_thumbs"`
	} `yaml:"layout"`

	Slots struct {
		MaxRetries     int `yaml:"max_retries"`
		DefaultPerGrid int `yaml:"default_per_grid"`
		MaxPerSession  int `yaml:"max_per_session"`
	} `yaml:"slots"`

	Resolver struct {
		CacheTTL         time.Duration `yaml:"cache_ttl"`
		RequestTimeout   time.Duration `yaml:"request_timeout"`
		RetryAttempts    int           `yaml:"retry_attempts"`
		BreakerThreshold int           `yaml:"breaker_threshold"`
		BreakerCooldown  time.Duration `yaml:"breaker_cooldown"`
	} `yaml:"resolver"`

	Platforms struct {
		EmbedParentHost string `yaml:"embed_parent_host"`
		Twitch          struct {
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
		} `yaml:"twitch"`
	} `yaml:"platforms"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Tracing struct {
		Enabled    bool    `yaml:"enabled"`
		JaegerURL  string  `yaml:"jaeger_url"`
		SampleRate float64 `yaml:"sample_rate"`
	} `yaml:"tracing"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Redis struct {
		Enabled    bool          `yaml:"enabled"`
		Address    string        `yaml:"address"`
		Password   string        `yaml:"password"`
		DB         int           `yaml:"db"`
		PoolSize   int           `yaml:"pool_size"`
		SessionTTL time.Duration `yaml:"session_ttl"`
	} `yaml:"redis"`

	Auth struct {
		JWTSecret       string        `yaml:"jwt_secret"`
		AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
		RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
		AllowedOrigins  []string      `yaml:"allowed_origins"`
	} `yaml:"auth"`

	RateLimiting struct {
		Enabled bool `yaml:"enabled"`

		HTTP struct {
			RequestsPerSecond float64 `yaml:"requests_per_second"`
			Burst             int     `yaml:"burst"`
			MaxConcurrent     int     `yaml:"max_concurrent"`
		} `yaml:"http"`

		WebSocket struct {
			MessagesPerSecond float64 `yaml:"messages_per_second"`
			Burst             int     `yaml:"burst"`
			MaxConcurrent     int     `yaml:"max_concurrent_connections"`
			MaxMessageSize    int64   `yaml:"max_message_size_bytes"`
		} `yaml:"websocket"`
	} `yaml:"rate_limiting"`
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be > 0")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be > 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0")
	}

	if c.Sync.Address == "" {
		return fmt.Errorf("sync.address must not be empty")
	}
	if c.Sync.PingInterval <= 0 {
		return fmt.Errorf("sync.ping_interval must be > 0")
	}
	if c.Sync.PongTimeout <= 0 {
		return fmt.Errorf("sync.pong_timeout must be > 0")
	}

	if c.Layout.Spacing < 0 {
		return fmt.Errorf("layout.spacing must be >= 0")
	}
	if c.Layout.PiPScale <= 0 || c.Layout.PiPScale >= 1 {
		return fmt.Errorf("layout.pip_scale must be in (0, 1)")
	}
	if c.Layout.FocusStripFrac <= 0 || c.Layout.FocusStripFrac >= 1 {
		return fmt.Errorf("layout.focus_strip_frac must be in (0, 1)")
	}
	if c.Layout.MaxPiPOverlays <= 0 {
		return fmt.Errorf("layout.max_pip_overlays must be > 0")
	}
	if c.Layout.MaxFocusThumbs <= 0 {
		return fmt.Errorf("layout.max_focus_thumbs must be > 0")
	}

	if c.Slots.MaxRetries < 0 {
		return fmt.Errorf("slots.max_retries must be >= 0")
	}
	if c.Slots.MaxPerSession <= 0 {
		return fmt.Errorf("slots.max_per_session must be > 0")
	}

	if c.Resolver.CacheTTL <= 0 {
		return fmt.Errorf("resolver.cache_ttl must be > 0")
	}
	if c.Resolver.RequestTimeout <= 0 {
		return fmt.Errorf("resolver.request_timeout must be > 0")
	}
	if c.Resolver.RetryAttempts < 0 {
		return fmt.Errorf("resolver.retry_attempts must be >= 0")
	}

	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort <= 0 {
		return fmt.Errorf("monitoring.prometheus_port must be > 0 when prometheus_enabled=true")
	}

	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level must not be empty")
	}

	if c.Redis.Enabled {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address must not be empty when redis.enabled=true")
		}
		if c.Redis.PoolSize <= 0 {
			return fmt.Errorf("redis.pool_size must be > 0 when redis.enabled=true")
		}
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("auth.refresh_token_ttl must be > 0")
	}

	if c.RateLimiting.Enabled {
		if c.RateLimiting.HTTP.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limiting.http.requests_per_second must be > 0 when rate limiting is enabled")
		}
		if c.RateLimiting.HTTP.Burst <= 0 {
			return fmt.Errorf("rate_limiting.http.burst must be > 0 when rate limiting is enabled")
		}
		if c.RateLimiting.WebSocket.MessagesPerSecond <= 0 {
			return fmt.Errorf("rate_limiting.websocket.messages_per_second must be > 0 when rate limiting is enabled")
		}
		if c.RateLimiting.WebSocket.Burst <= 0 {
			return fmt.Errorf("rate_limiting.websocket.burst must be > 0 when rate limiting is enabled")
		}
	}

	return nil
}

// Load reads configuration from YAML file, applies defaults and env overrides.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns configuration with sane defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Address = ":8080"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.ShutdownTimeout = 30 * time.Second

	cfg.Sync.Address = ":8081"
	cfg.Sync.PingInterval = 30 * time.Second
	cfg.Sync.PongTimeout = 60 * time.Second
	cfg.Sync.ShutdownTimeout = 30 * time.Second

	cfg.Layout.Spacing = 4
	cfg.Layout.PiPScale = 0.25
	cfg.Layout.PiPMargin = 16
	cfg.Layout.FocusStripFrac = 0.2
	cfg.Layout.MaxPiPOverlays = 4
	cfg.Layout.MaxFocusThumbs = 8

	cfg.Slots.MaxRetries = 3
	cfg.Slots.DefaultPerGrid = 4
	cfg.Slots.MaxPerSession = 16

	cfg.Resolver.CacheTTL = 60 * time.Second
	cfg.Resolver.RequestTimeout = 5 * time.Second
	cfg.Resolver.RetryAttempts = 2
	cfg.Resolver.BreakerThreshold = 5
	cfg.Resolver.BreakerCooldown = 30 * time.Second

	cfg.Platforms.EmbedParentHost = "localhost"

	cfg.Monitoring.PrometheusEnabled = true
	cfg.Monitoring.PrometheusPort = 9090

	cfg.Tracing.Enabled = false
	cfg.Tracing.JaegerURL = "http://localhost:14268/api/traces"
	cfg.Tracing.SampleRate = 1.0

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	cfg.Redis.Enabled = false
	cfg.Redis.Address = "localhost:6379"
	cfg.Redis.PoolSize = 10
	cfg.Redis.SessionTTL = 24 * time.Hour

	cfg.Auth.JWTSecret = "dev-secret-change-me"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour

	cfg.RateLimiting.Enabled = true
	cfg.RateLimiting.HTTP.RequestsPerSecond = 50
	cfg.RateLimiting.HTTP.Burst = 100
	cfg.RateLimiting.HTTP.MaxConcurrent = 0
	cfg.RateLimiting.WebSocket.MessagesPerSecond = 20
	cfg.RateLimiting.WebSocket.Burst = 40
	cfg.RateLimiting.WebSocket.MaxConcurrent = 0
	cfg.RateLimiting.WebSocket.MaxMessageSize = 4096

	return cfg
}

// applyEnvOverrides lets deployment environments override sensitive values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STREAMGRID_SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("STREAMGRID_SYNC_ADDRESS"); v != "" {
		c.Sync.Address = v
	}
	if v := os.Getenv("STREAMGRID_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("STREAMGRID_REDIS_ADDRESS"); v != "" {
		c.Redis.Enabled = true
		c.Redis.Address = v
	}
	if v := os.Getenv("STREAMGRID_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("STREAMGRID_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("STREAMGRID_TWITCH_CLIENT_ID"); v != "" {
		c.Platforms.Twitch.ClientID = v
	}
	if v := os.Getenv("STREAMGRID_TWITCH_CLIENT_SECRET"); v != "" {
		c.Platforms.Twitch.ClientSecret = v
	}
	if v := os.Getenv("STREAMGRID_EMBED_PARENT_HOST"); v != "" {
		c.Platforms.EmbedParentHost = v
	}
}
