package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration constants
const (
	// Backend Configuration
	APIBaseURL   = "API_BASE_URL"
	ImageBaseURL = "IMAGE_BASE_URL"
	HTTPTimeout  = "HTTP_TIMEOUT"

	// Session Configuration
	SessionStore = "SESSION_STORE"
	SessionFile  = "SESSION_FILE"
	SessionTTL   = "SESSION_TTL"
	SessionKey   = "SESSION_KEY_PREFIX"

	// Logging Configuration
	LogLevel  = "LOG_LEVEL"
	LogFormat = "LOG_FORMAT"

	// Redis Configuration
	RedisAddr     = "REDIS_ADDR"
	RedisPassword = "REDIS_PASSWORD"
	RedisDB       = "REDIS_DB"

	// Live updates Configuration
	Broadcaster  = "BROADCASTER"
	PollInterval = "POLL_INTERVAL"
	PollWorkers  = "POLL_WORKERS"
	FeedAddr     = "FEED_ADDR"

	// Feed connection limits
	FeedMaxWorkers  = 10
	FeedMaxCapacity = 100
)

// Session store kinds
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Broadcaster kinds
const (
	BroadcasterLocal = "local"
	BroadcasterRedis = "redis"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Logging LoggingConfig
	Live    LiveConfig
}

// APIConfig holds the backend endpoints
type APIConfig struct {
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
}

// SessionConfig holds where the auth token is persisted
type SessionConfig struct {
	Store     string
	File      string
	TTL       time.Duration
	KeyPrefix string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LiveConfig holds the poller and feed configuration
type LiveConfig struct {
	Broadcaster  string
	PollInterval time.Duration
	PollWorkers  int
	FeedAddr     string
}

// LoadConfig loads configuration from environment variables and .envrc file
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".envrc")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read config file (optional, will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	sessionFile := v.GetString(SessionFile)
	if sessionFile == "" {
		sessionFile = defaultSessionFile()
	}

	return &Config{
		API: APIConfig{
			BaseURL:      strings.TrimRight(v.GetString(APIBaseURL), "/"),
			ImageBaseURL: strings.TrimRight(v.GetString(ImageBaseURL), "/"),
			Timeout:      v.GetDuration(HTTPTimeout),
		},
		Session: SessionConfig{
			Store:     strings.ToLower(v.GetString(SessionStore)),
			File:      sessionFile,
			TTL:       v.GetDuration(SessionTTL),
			KeyPrefix: v.GetString(SessionKey),
		},
		Redis: RedisConfig{
			Addr:     v.GetString(RedisAddr),
			Password: v.GetString(RedisPassword),
			DB:       v.GetInt(RedisDB),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(LogLevel),
			Format: v.GetString(LogFormat),
		},
		Live: LiveConfig{
			Broadcaster:  strings.ToLower(v.GetString(Broadcaster)),
			PollInterval: v.GetDuration(PollInterval),
			PollWorkers:  v.GetInt(PollWorkers),
			FeedAddr:     v.GetString(FeedAddr),
		},
	}
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Backend defaults
	v.SetDefault(APIBaseURL, "http://localhost:5000/api")
	v.SetDefault(ImageBaseURL, "http://localhost:5000")
	v.SetDefault(HTTPTimeout, "30s")

	// Session defaults
	v.SetDefault(SessionStore, StoreFile)
	v.SetDefault(SessionFile, "")
	v.SetDefault(SessionTTL, "0s")
	v.SetDefault(SessionKey, "storefront:session:")

	// Redis defaults
	v.SetDefault(RedisAddr, "localhost:6379")
	v.SetDefault(RedisPassword, "")
	v.SetDefault(RedisDB, 0)

	// Logging defaults
	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogFormat, "console")

	// Live updates defaults
	v.SetDefault(Broadcaster, BroadcasterLocal)
	v.SetDefault(PollInterval, "10s")
	v.SetDefault(PollWorkers, 4)
	v.SetDefault(FeedAddr, ":8090")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "auction-storefront", "session.json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.API.ImageBaseURL == "" {
		return fmt.Errorf("image base URL is required")
	}

	switch c.Session.Store {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("Redis address is required for the redis session store")
		}
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}

	switch c.Live.Broadcaster {
	case BroadcasterLocal:
	case BroadcasterRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("Redis address is required for the redis broadcaster")
		}
	default:
		return fmt.Errorf("unknown broadcaster %q", c.Live.Broadcaster)
	}

	if c.Live.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	if c.Live.PollWorkers <= 0 {
		return fmt.Errorf("poll workers must be positive")
	}

	return nil
}

// NeedsRedis reports whether any component is backed by Redis
func (c *Config) NeedsRedis() bool {
	return c.Session.Store == StoreRedis || c.Live.Broadcaster == BroadcasterRedis
}
