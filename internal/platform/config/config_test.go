package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 2, cfg.ApprovalThreshold)
	assert.Equal(t, 0, cfg.RejectionThreshold)
	assert.False(t, cfg.StrictVoting)
	assert.Equal(t, "NGN", cfg.DefaultCurrency)
	assert.Equal(t, 3, cfg.SettlementMaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.SettlementTimeout)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("TREASURY_APPROVAL_THRESHOLD", 4)
	v.Set("TREASURY_REJECTION_THRESHOLD", -1)
	v.Set("TREASURY_STRICT_VOTING", true)
	v.Set("TREASURY_CURRENCY", "usd")
	v.Set("SETTLEMENT_MAX_ATTEMPTS", 0)
	v.Set("SETTLEMENT_TIMEOUT", "not-a-duration")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := fromViper(v)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 4, cfg.ApprovalThreshold)
	assert.Equal(t, 0, cfg.RejectionThreshold)
	assert.True(t, cfg.StrictVoting)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 1, cfg.SettlementMaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.SettlementTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
