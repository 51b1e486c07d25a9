package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type WebServerConfig struct {
	Port            string   `mapstructure:"port"`
	IP              string   `mapstructure:"ip"`
	Scheme          string   `mapstructure:"scheme"`
	BaseURL         string   `mapstructure:"base_url"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

type RedisConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Address          string `mapstructure:"address"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	PoolSize         int    `mapstructure:"pool_size"`
	MinIdleConns     int    `mapstructure:"min_idle_conns"`
	OperationTimeout int    `mapstructure:"operation_timeout"`
}

type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	BackupPath string `mapstructure:"backup_path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CacheConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxSizeMB   int  `mapstructure:"max_size_mb"`
	TTLSeconds  int  `mapstructure:"ttl_seconds"`
	CounterSize int  `mapstructure:"counter_size"`
}

type AuthConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	JWTSecret       string `mapstructure:"jwt_secret"`
	TokenTTLHours   int    `mapstructure:"token_ttl_hours"`
	AdminAPIKeyHash string `mapstructure:"admin_api_key_hash"` // bcrypt hash of the X-Admin-Key value
}

// AnalyticsConfig tunes the dashboard computations.
type AnalyticsConfig struct {
	ForecastDays            int     `mapstructure:"forecast_days"`
	RealtimeIntervalSeconds int     `mapstructure:"realtime_interval_seconds"`
	HotspotPrecision        int     `mapstructure:"hotspot_precision"` // decimal places of the lat/lng grid
	MaxHotspots             int     `mapstructure:"max_hotspots"`
	CoverageRadiusKM        float64 `mapstructure:"coverage_radius_km"`
	QueryTimeout            int     `mapstructure:"query_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`
}

type Config struct {
	WebServer WebServerConfig `mapstructure:"webserver"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// LoadConfig reads config.yaml from the working directory. A missing file is
// not an error: defaults and TRANSIT_* environment variables still apply.
func LoadConfig() (Config, error) {
	var config Config

	// .env is optional
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TRANSIT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %v", err)
			return config, err
		}
		log.Println("No config file found, using defaults and environment")
	}

	if err := v.Unmarshal(&config); err != nil {
		log.Printf("Unable to decode into struct: %v", err)
		return config, err
	}

	return config, nil
}

func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

func setDefaults(v *viper.Viper) {
	// WebServer defaults
	v.SetDefault("webserver.port", "8080")
	v.SetDefault("webserver.ip", "127.0.0.1")
	v.SetDefault("webserver.scheme", "http")
	v.SetDefault("webserver.base_url", "")
	v.SetDefault("webserver.read_timeout", 15)
	v.SetDefault("webserver.write_timeout", 15)
	v.SetDefault("webserver.shutdown_timeout", 30)
	v.SetDefault("webserver.allowed_origins", []string{"*"})

	// Redis defaults
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.operation_timeout", 5)

	// Database defaults
	v.SetDefault("database.path", "transit.db")
	v.SetDefault("database.backup_path", "")
	v.SetDefault("database.log_queries", false)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size_mb", 64)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.counter_size", 100000)

	// RateLimit defaults
	v.SetDefault("ratelimit.requests_per_second", 10.0)
	v.SetDefault("ratelimit.burst", 20)

	// Auth defaults
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("auth.admin_api_key_hash", "")

	// Analytics defaults
	v.SetDefault("analytics.forecast_days", 7)
	v.SetDefault("analytics.realtime_interval_seconds", 60)
	v.SetDefault("analytics.hotspot_precision", 3)
	v.SetDefault("analytics.max_hotspots", 20)
	v.SetDefault("analytics.coverage_radius_km", 5.0)
	v.SetDefault("analytics.query_timeout", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}
