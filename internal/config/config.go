// README: Config loader with env defaults for HTTP, backend API, Redis, auth, and payment settings.
package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Backend struct {
		BaseURL string
	}
	Web struct {
		// BaseURL is the public origin used in redemption links.
		BaseURL string
	}
	Redis struct {
		Addr string
	}
	Auth struct {
		JWTSecret     string
		CookieTTLDays int
	}
	Stripe struct {
		APIKey string
	}
	Maps struct {
		APIKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	var err error
	cfg.HTTP.Addr = envOrDefault("KEEPIFY_HTTP_ADDR", ":8080")
	cfg.Backend.BaseURL = envOrDefault("KEEPIFY_BACKEND_URL", "http://localhost:9000")
	cfg.Web.BaseURL = envOrDefault("KEEPIFY_WEB_BASE_URL", "http://localhost:8080")
	cfg.Redis.Addr = envOrDefault("KEEPIFY_REDIS_ADDR", "localhost:6379")
	if cfg.Auth.JWTSecret, err = envOrError("KEEPIFY_JWT_SECRET"); err != nil {
		return cfg, err
	}
	cfg.Auth.CookieTTLDays = envOrDefaultInt("KEEPIFY_COOKIE_TTL_DAYS", 365)
	if cfg.Stripe.APIKey, err = envOrError("STRIPE_API_KEY"); err != nil {
		return cfg, err
	}
	if cfg.Maps.APIKey, err = envOrError("MAPS_API_KEY"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", errors.New("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
