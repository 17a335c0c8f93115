package utils

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFrom(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "9090")
	v.Set("STORAGE", DriverMemory)
	v.Set("BASE_TICKET_PRICE", "420.50")
	v.Set("SESSION_EXPIRY_HOURS", 2)
	v.Set("BASKET_TTL_HOURS", 1)
	v.Set("ADMIN_EMAILS", " Root@Example.com, ,ops@example.com")

	cfg, err := configFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DriverMemory, cfg.Storage.BasketDriver, "basket store follows STORAGE when unset")
	assert.Equal(t, "420.5", cfg.Catalog.BaseTicketPrice.String())
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionExpiry)
	assert.Equal(t, time.Hour, cfg.Redis.BasketTTL)
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, cfg.Auth.AdminEmails)
}

func TestConfigFrom_BasketDriverOverride(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE", DriverPostgres)
	v.Set("BASKET_STORE", DriverRedis)
	v.Set("BASE_TICKET_PRICE", "350")

	cfg, err := configFrom(v)
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Storage.BasketDriver)
}

func TestConfigFrom_BadPrice(t *testing.T) {
	v := viper.New()
	v.Set("BASE_TICKET_PRICE", "cheap")

	_, err := configFrom(v)
	assert.Error(t, err)
}
