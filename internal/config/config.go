package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Cart persistence backend: "memory", "postgres" or "redis".
	SlotBackend string
	CartDSN     string
	RedisAddr   string

	// Empty disables event publishing.
	RabbitURL string

	TaxRate float64
}

func Load() Config {
	cfg := Config{
		Port:        getenv("PORT", "8084"),
		SlotBackend: strings.ToLower(getenv("CART_SLOT_BACKEND", "memory")),
		CartDSN:     getenv("CART_DB_DSN", ""),
		RedisAddr:   getenv("CART_REDIS_ADDR", "localhost:6379"),
		RabbitURL:   getenv("RABBITMQ_URL", ""),
		TaxRate:     parseFloat(getenv("TAX_RATE", "0.08"), 0.08),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
