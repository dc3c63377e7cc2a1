package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment, with an optional .env file
// for local development. Secrets have no defaults and fail fast when absent.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "mentorhub")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 0)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", "1h")
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", "30m")
	v.SetDefault("DB_POOL_HEALTH_CHECK_PERIOD", "1m")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", "10m")

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h")

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	cfg := Config{
		App: AppConfig{
			AppName:     v.GetString("APP_NAME"),
			Environment: v.GetString("APP_ENV"),
			HTTPPort:    v.GetString("HTTP_PORT"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			DBHost:                v.GetString("DB_HOST"),
			DBPort:                v.GetString("DB_PORT"),
			DBName:                v.GetString("DB_NAME"),
			DBUser:                v.GetString("DB_USER"),
			DBPassword:            v.GetString("DB_PASSWORD"),
			DBSSLMode:             v.GetString("DB_SSL_MODE"),
			ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
			PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
			PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
			PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
			PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
			PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		JWT: JWTConfig{
			AccessSecret:     v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret:    v.GetString("JWT_REFRESH_SECRET"),
			AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
			RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			Limit:   v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:  v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	var missing []string
	if strings.TrimSpace(cfg.Database.DBName) == "" {
		missing = append(missing, "DB_NAME")
	}
	if strings.TrimSpace(cfg.Database.DBUser) == "" {
		missing = append(missing, "DB_USER")
	}
	if strings.TrimSpace(cfg.JWT.AccessSecret) == "" {
		missing = append(missing, "JWT_ACCESS_SECRET")
	}
	if strings.TrimSpace(cfg.JWT.RefreshSecret) == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
