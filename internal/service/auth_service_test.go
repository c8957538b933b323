package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobiasreicht/film-tracker-backend/internal/config"
)

func TestSignTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, config.JWTConfig{Secret: "test-secret", TTL: time.Hour})

	signed, err := svc.signToken(42)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, strconv.Itoa(42), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSignTokenRejectsWrongSecret(t *testing.T) {
	svc := NewAuthService(nil, config.JWTConfig{Secret: "test-secret", TTL: time.Hour})

	signed, err := svc.signToken(42)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
