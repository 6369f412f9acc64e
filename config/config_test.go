package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")

	Load()

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, 24, AppConfig.JWT.ExpiryHours)
	assert.Equal(t, 24, AppConfig.Jobs.StaleBookingHours)
	assert.NotEmpty(t, AppConfig.Database.URL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("STALE_BOOKING_HOURS", "6")

	Load()

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, 2, AppConfig.JWT.ExpiryHours)
	assert.Equal(t, 6, AppConfig.Jobs.StaleBookingHours)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "not-a-number")

	Load()

	assert.Equal(t, 24, AppConfig.JWT.ExpiryHours)
}
