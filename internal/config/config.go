package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	AppPort            string
	CartDBPath         string
	CatalogPath        string
	ScopeSecret        string
	PayPalClientID     string
	PayPalClientSecret string
	PayPalBaseURL      string
}

const (
	paypalSandboxURL = "https://api-m.sandbox.paypal.com"
	paypalLiveURL    = "https://api-m.paypal.com"
)

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             os.Getenv("APP_ENV"),
		AppPort:            os.Getenv("APP_PORT"),
		CartDBPath:         os.Getenv("CART_DB_PATH"),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		ScopeSecret:        os.Getenv("SCOPE_SECRET"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalBaseURL:      os.Getenv("PAYPAL_BASE_URL"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.CartDBPath == "" {
		cfg.CartDBPath = "carts.db"
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = "data/products.json"
	}
	if cfg.PayPalBaseURL == "" {
		if cfg.AppEnv == "production" {
			cfg.PayPalBaseURL = paypalLiveURL
		} else {
			cfg.PayPalBaseURL = paypalSandboxURL
		}
	}

	if cfg.ScopeSecret == "" {
		log.Fatal("SCOPE_SECRET not set in environment")
	}

	return cfg
}
