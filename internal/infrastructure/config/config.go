package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Feeds    FeedsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// DSN returns the Postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the Redis host:port address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig holds JWT settings for the member-auth middleware
type JWTConfig struct {
	Secret string
	Issuer string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server settings
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// LiveFeedConfig holds the settings for one third-party product feed
type LiveFeedConfig struct {
	Endpoint string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// LinkedServiceConfig holds the settings for one external registry service
type LinkedServiceConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// FeedsConfig holds every external feed endpoint
type FeedsConfig struct {
	Target     LiveFeedConfig
	Amazon     LiveFeedConfig
	Babylist   LinkedServiceConfig
	MyRegistry LinkedServiceConfig
	// SyncLockTTL bounds how long a (member, source) reconciliation may
	// hold its critical section before the lock self-expires
	SyncLockTTL time.Duration
}

// Load reads configuration from config.yaml and NESTLINE_* environment
// variables, applying defaults for anything unset
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Missing config file is fine, defaults and env vars apply.
	}

	v.SetEnvPrefix("NESTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Feeds: FeedsConfig{
			Target: LiveFeedConfig{
				Endpoint: v.GetString("feeds.target.endpoint"),
				Timeout:  v.GetDuration("feeds.target.timeout"),
				CacheTTL: v.GetDuration("feeds.target.cache_ttl"),
			},
			Amazon: LiveFeedConfig{
				Endpoint: v.GetString("feeds.amazon.endpoint"),
				Timeout:  v.GetDuration("feeds.amazon.timeout"),
				CacheTTL: v.GetDuration("feeds.amazon.cache_ttl"),
			},
			Babylist: LinkedServiceConfig{
				Endpoint: v.GetString("feeds.babylist.endpoint"),
				Timeout:  v.GetDuration("feeds.babylist.timeout"),
			},
			MyRegistry: LinkedServiceConfig{
				Endpoint: v.GetString("feeds.myregistry.endpoint"),
				Timeout:  v.GetDuration("feeds.myregistry.timeout"),
			},
			SyncLockTTL: v.GetDuration("feeds.sync_lock_ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nestline-registry"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "nestline"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 10
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.Feeds.Target.Endpoint == "" {
		cfg.Feeds.Target.Endpoint = "https://api.target.com/registry_items/v1"
	}
	if cfg.Feeds.Amazon.Endpoint == "" {
		cfg.Feeds.Amazon.Endpoint = "https://webservices.amazon.com/registry/v3/items"
	}
	if cfg.Feeds.Babylist.Endpoint == "" {
		cfg.Feeds.Babylist.Endpoint = "https://api.babylist.com/v2/registry"
	}
	if cfg.Feeds.MyRegistry.Endpoint == "" {
		cfg.Feeds.MyRegistry.Endpoint = "https://api.myregistry.com/v1/giftlist"
	}
	applyFeedDefaults(&cfg.Feeds.Target)
	applyFeedDefaults(&cfg.Feeds.Amazon)
	if cfg.Feeds.Babylist.Timeout == 0 {
		cfg.Feeds.Babylist.Timeout = 10 * time.Second
	}
	if cfg.Feeds.MyRegistry.Timeout == 0 {
		cfg.Feeds.MyRegistry.Timeout = 10 * time.Second
	}
	if cfg.Feeds.SyncLockTTL == 0 {
		cfg.Feeds.SyncLockTTL = 2 * time.Minute
	}
}

func applyFeedDefaults(feed *LiveFeedConfig) {
	if feed.Timeout == 0 {
		feed.Timeout = 5 * time.Second
	}
	if feed.CacheTTL == 0 {
		feed.CacheTTL = 10 * time.Minute
	}
}

// validate checks the configuration for values that cannot work
func (c *Config) validate() error {
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns cannot exceed database.max_open_conns")
	}
	return nil
}
