package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appliance-booking-server/config"
)

func TestMain(m *testing.M) {
	config.Load()
	m.Run()
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "employee")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "employee", claims.Role)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)

	_, err = VerifyToken(token + "x")
	assert.Error(t, err)

	old := config.AppConfig.JWT.Secret
	config.AppConfig.JWT.Secret = "a-different-secret"
	defer func() { config.AppConfig.JWT.Secret = old }()

	_, err = VerifyToken(token)
	assert.Error(t, err)
}
