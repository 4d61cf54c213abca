package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const DefaultCatalogBaseURL = "https://react-native-food-delivery-be.eapi.joincoded.com"

type Config struct {
	Telegram TelegramConfig
	Catalog  CatalogConfig
	Stub     StubConfig
	Log      LogConfig
	Auth     AuthConfig
}

type TelegramConfig struct {
	Token string
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StubConfig is used by the catalog-stub subcommand only.
type StubConfig struct {
	Addr string
}

type LogConfig struct {
	Env string // "development" or "production"
}

type AuthConfig struct {
	BcryptCost int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("CATALOG_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Config{
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", DefaultCatalogBaseURL),
			Timeout: timeout,
		},
		Stub: StubConfig{
			Addr: getEnv("STUB_ADDR", ":8081"),
		},
		Log: LogConfig{
			Env: getEnv("LOG_ENV", "production"),
		},
		Auth: AuthConfig{
			BcryptCost: cost,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
