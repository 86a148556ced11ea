package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technotes/internal/notes/adapters/services"
	portservices "technotes/internal/notes/ports/services"
	"technotes/pkg/logger"
)

const testSecretKey = "test-secret-key-12345"

// signToken выпускает токен с вложенным объектом UserInfo, как это делает
// внешний издатель.
func signToken(t *testing.T, secret, username string, roles []string, ttl time.Duration) string {
	t.Helper()

	claims := services.Claims{
		UserInfo: services.UserInfo{
			Username: username,
			Roles:    roles,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyAccessToken(t *testing.T) {
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), testLogger)

	service := services.NewJWT(testSecretKey)

	t.Run("successful verification of a valid token", func(t *testing.T) {
		token := signToken(t, testSecretKey, "alice", []string{"Employee", "Admin"}, 15*time.Minute)

		claims, err := service.VerifyAccessToken(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, []string{"Employee", "Admin"}, claims.Roles)
	})

	t.Run("error on expired token", func(t *testing.T) {
		token := signToken(t, testSecretKey, "alice", []string{"Employee"}, -15*time.Minute)

		claims, err := service.VerifyAccessToken(ctx, token)

		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, portservices.ErrExpiredJWTToken)
	})

	t.Run("error on token signed with another secret", func(t *testing.T) {
		token := signToken(t, "another-secret", "alice", []string{"Employee"}, 15*time.Minute)

		claims, err := service.VerifyAccessToken(ctx, token)

		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})

	t.Run("error on tampered token", func(t *testing.T) {
		token := signToken(t, testSecretKey, "alice", []string{"Employee"}, 15*time.Minute)
		tampered := token[:len(token)-2] + "xx"

		claims, err := service.VerifyAccessToken(ctx, tampered)

		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})

	t.Run("error on malformed token", func(t *testing.T) {
		claims, err := service.VerifyAccessToken(ctx, "invalid.token.format")

		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})

	t.Run("error on empty username claim", func(t *testing.T) {
		token := signToken(t, testSecretKey, "", []string{"Employee"}, 15*time.Minute)

		claims, err := service.VerifyAccessToken(ctx, token)

		require.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, portservices.ErrInvalidJWTToken)
	})
}
