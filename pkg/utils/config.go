package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	MetricsEnabled bool
}

// StorageConfig picks the repository implementations. Driver is used for every
// collection; BasketDriver may point the basket somewhere else (e.g. redis).
type StorageConfig struct {
	Driver       string
	BasketDriver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	URL       string
	BasketTTL time.Duration
}

type AuthConfig struct {
	SessionExpiry time.Duration
	AdminEmails   []string // registering with one of these grants the admin role
}

type CatalogConfig struct {
	BaseTicketPrice decimal.Decimal
	Seed            bool
}

const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "movie-basket")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("STORAGE", DriverPostgres)
	v.SetDefault("BASKET_STORE", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("BASKET_TTL_HOURS", 72)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("BASE_TICKET_PRICE", "350")
	v.SetDefault("SEED_CATALOG", false)
	v.SetDefault("ADMIN_EMAILS", "")

	if err := v.ReadInConfig(); err != nil {
		// running from plain environment variables is fine
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	return configFrom(v)
}

func configFrom(v *viper.Viper) (*Config, error) {
	price, err := decimal.NewFromString(v.GetString("BASE_TICKET_PRICE"))
	if err != nil {
		return nil, err
	}

	storage := StorageConfig{
		Driver:       v.GetString("STORAGE"),
		BasketDriver: v.GetString("BASKET_STORE"),
	}
	if storage.BasketDriver == "" {
		storage.BasketDriver = storage.Driver
	}

	return &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		},
		Storage: storage,
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			URL:       v.GetString("REDIS_URL"),
			BasketTTL: time.Duration(v.GetInt("BASKET_TTL_HOURS")) * time.Hour,
		},
		Auth: AuthConfig{
			SessionExpiry: time.Duration(v.GetInt("SESSION_EXPIRY_HOURS")) * time.Hour,
			AdminEmails:   splitList(v.GetString("ADMIN_EMAILS")),
		},
		Catalog: CatalogConfig{
			BaseTicketPrice: price,
			Seed:            v.GetBool("SEED_CATALOG"),
		},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
