package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	Storefront StorefrontConfig
	Log        LogConfig
}

type AppConfig struct {
	Name        string        `mapstructure:"name"`
	Environment string        `mapstructure:"environment"`
	Debug       bool          `mapstructure:"debug"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Port        string        `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	ExpirationTime time.Duration `mapstructure:"expiration_time"`
	Issuer         string        `mapstructure:"issuer"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	KeyTTL       time.Duration `mapstructure:"key_ttl"`
}

type RateLimitConfig struct {
	Request  int `mapstructure:"request"`
	Duration int `mapstructure:"duration"`
}

// StorefrontConfig holds the state-layer policies.
type StorefrontConfig struct {
	StorageBackend     string        `mapstructure:"storage_backend"`
	BreakerThreshold   int           `mapstructure:"breaker_threshold"`
	BreakerCooldown    time.Duration `mapstructure:"breaker_cooldown"`
	ItemsPerPage       int           `mapstructure:"items_per_page"`
	PaginationSiblings int           `mapstructure:"pagination_siblings"`
	HistoryMode        string        `mapstructure:"history_mode"`
	SessionIdleTTL     time.Duration `mapstructure:"session_idle_ttl"`
	CatalogPath        string        `mapstructure:"catalog_path"`
	DefaultTab         string        `mapstructure:"default_tab"`
	AllowedOrigins     []string      `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Path   string `mapstructure:"path"`
	ToFile bool   `mapstructure:"to_file"`
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "storefront"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			Timeout:     getEnvAsDuration("APP_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "storefront"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			Database:     getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "storefront"),
			KeyTTL:       getEnvAsDuration("REDIS_KEY_TTL", 0),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "default_secret_key_change_in_production"),
			ExpirationTime: getEnvAsDuration("JWT_EXPIRATION", 30*24*time.Hour),
			Issuer:         getEnv("JWT_ISSUER", "storefront"),
		},
		RateLimit: RateLimitConfig{
			Request:  getEnvAsInt("RATE_LIMIT_MAX_REQUEST", 120),
			Duration: getEnvAsInt("RATE_LIMIT_DURATION", 60),
		},
		Storefront: StorefrontConfig{
			StorageBackend:     strings.ToLower(getEnv("STOREFRONT_STORAGE_BACKEND", "memory")),
			BreakerThreshold:   getEnvAsInt("STOREFRONT_STORAGE_BREAKER_THRESHOLD", 5),
			BreakerCooldown:    getEnvAsDuration("STOREFRONT_STORAGE_BREAKER_COOLDOWN", 30*time.Second),
			ItemsPerPage:       getEnvAsInt("STOREFRONT_ITEMS_PER_PAGE", 9),
			PaginationSiblings: getEnvAsInt("STOREFRONT_PAGINATION_SIBLINGS", 1),
			HistoryMode:        strings.ToLower(getEnv("STOREFRONT_HISTORY_MODE", "replace")),
			SessionIdleTTL:     getEnvAsDuration("STOREFRONT_SESSION_IDLE_TTL", 30*time.Minute),
			CatalogPath:        getEnv("STOREFRONT_CATALOG_PATH", ""),
			DefaultTab:         getEnv("STOREFRONT_DEFAULT_TAB", "description"),
			AllowedOrigins:     getEnvAsList("STOREFRONT_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Path:   getEnv("LOGS_PATH", "./logs"),
			ToFile: getEnvAsBool("LOG_TO_FILE", false),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Storefront.StorageBackend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("config: unknown STOREFRONT_STORAGE_BACKEND %q", c.Storefront.StorageBackend)
	}
	switch c.Storefront.HistoryMode {
	case "replace", "push":
	default:
		return fmt.Errorf("config: unknown STOREFRONT_HISTORY_MODE %q", c.Storefront.HistoryMode)
	}
	if c.Storefront.ItemsPerPage < 1 {
		return fmt.Errorf("config: STOREFRONT_ITEMS_PER_PAGE must be positive, got %d", c.Storefront.ItemsPerPage)
	}
	if c.Storefront.PaginationSiblings < 0 {
		return fmt.Errorf("config: STOREFRONT_PAGINATION_SIBLINGS must not be negative, got %d", c.Storefront.PaginationSiblings)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	return nil
}

func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := cast.ToIntE(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := cast.ToBoolE(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
