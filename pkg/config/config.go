package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Recommender RecommenderConfig
	Ratings     RatingsConfig
	Log         LogConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

// RecommenderConfig points at the external ML recommendation service.
// An empty BaseURL means the service is not configured.
type RecommenderConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Username string
	Password string
}

type RatingsConfig struct {
	ExportToken string
}

type LogConfig struct {
	Level string
}

const defaultRecommenderTimeoutMs = 5000

func Load() (*Config, error) {
	_ = godotenv.Load()

	timeoutMs, err := strconv.Atoi(getEnv("RECOMMENDER_TIMEOUT_MS", strconv.Itoa(defaultRecommenderTimeoutMs)))
	if err != nil || timeoutMs <= 0 {
		return nil, errors.New("invalid recommender timeout")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Style Market API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "style_market"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Recommender: RecommenderConfig{
			BaseURL:  getEnv("RECOMMENDER_URL", ""),
			Timeout:  time.Duration(timeoutMs) * time.Millisecond,
			Username: getEnv("RECOMMENDER_USERNAME", ""),
			Password: getEnv("RECOMMENDER_PASSWORD", ""),
		},
		Ratings: RatingsConfig{
			ExportToken: getEnv("RATINGS_EXPORT_TOKEN", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
