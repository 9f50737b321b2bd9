package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CART_SLOT_BACKEND", "")
	t.Setenv("TAX_RATE", "")

	cfg := Load()

	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, "memory", cfg.SlotBackend)
	assert.Equal(t, 0.08, cfg.TaxRate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CART_SLOT_BACKEND", "Redis")
	t.Setenv("TAX_RATE", "0.05")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis", cfg.SlotBackend)
	assert.Equal(t, 0.05, cfg.TaxRate)
}

func TestLoad_BadTaxRateFallsBack(t *testing.T) {
	t.Setenv("TAX_RATE", "not-a-number")

	cfg := Load()
	assert.Equal(t, 0.08, cfg.TaxRate)
}
