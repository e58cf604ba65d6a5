package userservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret-test-secret-test-1234")

	user := &User{
		ID:       7,
		Username: "testuser",
		Name:     "Test User",
		Email:    "testuser@example.com",
		Role:     RoleUser,
	}

	t.Run("sign and verify", func(t *testing.T) {
		token, err := signToken(secret, user, time.Hour)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := verifyToken(secret, token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Username, claims.Username)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.Role, claims.Role)
	})

	t.Run("empty token", func(t *testing.T) {
		claims, err := verifyToken(secret, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := signToken(secret, user, time.Hour)
		assert.NoError(t, err)

		claims, err := verifyToken(secret, token+"x")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := signToken(secret, user, time.Hour)
		assert.NoError(t, err)

		claims, err := verifyToken([]byte("another-secret-another-secret-12"), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := signToken(secret, user, -time.Minute)
		assert.NoError(t, err)

		claims, err := verifyToken(secret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
