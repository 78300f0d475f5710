package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Kafka          KafkaConfig          `mapstructure:"kafka"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Catalog        CatalogConfig        `mapstructure:"catalog"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Assistant      AssistantConfig      `mapstructure:"assistant"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Hot  RedisInstanceConfig `mapstructure:"hot"`
	Warm RedisInstanceConfig `mapstructure:"warm"`
}

type RedisInstanceConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Enabled bool     `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CatalogConfig struct {
	CSVPath      string        `mapstructure:"csv_path"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type RecommendationConfig struct {
	DefaultLimit        int           `mapstructure:"default_limit"`
	CollaborativeWeight float64       `mapstructure:"collaborative_weight"`
	ContentWeight       float64       `mapstructure:"content_weight"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

type AssistantConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	Model               string  `mapstructure:"model"`
	APIKey              string  `mapstructure:"api_key"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Database defaults
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_time", "15m")
	viper.SetDefault("database.max_lifetime", "1h")
	viper.SetDefault("database.connect_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.hot.max_retries", 3)
	viper.SetDefault("redis.hot.pool_size", 10)
	viper.SetDefault("redis.hot.timeout", "5s")
	viper.SetDefault("redis.warm.max_retries", 3)
	viper.SetDefault("redis.warm.pool_size", 5)
	viper.SetDefault("redis.warm.timeout", "10s")

	// Kafka defaults
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Catalog defaults
	viper.SetDefault("catalog.csv_path", "./data/videos.csv")
	viper.SetDefault("catalog.fetch_timeout", "5s")

	// Recommendation defaults
	viper.SetDefault("recommendation.default_limit", 20)
	viper.SetDefault("recommendation.collaborative_weight", 0.6)
	viper.SetDefault("recommendation.content_weight", 0.4)
	viper.SetDefault("recommendation.cache_ttl", "15m")

	// Assistant defaults
	viper.SetDefault("assistant.enabled", false)
	viper.SetDefault("assistant.model", "gemini-2.0-flash")
	viper.SetDefault("assistant.confidence_threshold", 0.7)

	// Rate limit defaults
	viper.SetDefault("rate_limit.requests", 1000)
	viper.SetDefault("rate_limit.window", "1h")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
