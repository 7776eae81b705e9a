package auth

import (
	"testing"
	"time"

	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "idp.example.com",
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: "maria@example.com",
		Name:  "Maria Silva",
	}
}

func TestTokenVerifier_Verify(t *testing.T) {
	verifier := NewTokenVerifier(config.JWTConfig{
		Secret: testSecret,
		Issuer: "idp.example.com",
	})

	t.Run("accepts a valid token", func(t *testing.T) {
		tokenString := signToken(t, testSecret, validClaims())

		claims, err := verifier.Verify(tokenString)

		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Equal(t, "maria@example.com", claims.Email)
	})

	t.Run("rejects a token signed with the wrong secret", func(t *testing.T) {
		tokenString := signToken(t, "another-secret", validClaims())

		_, err := verifier.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		tokenString := signToken(t, testSecret, claims)

		_, err := verifier.Verify(tokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token from another issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "somewhere-else"
		tokenString := signToken(t, testSecret, claims)

		_, err := verifier.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		claims := validClaims()
		claims.Subject = ""
		tokenString := signToken(t, testSecret, claims)

		_, err := verifier.Verify(tokenString)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := verifier.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
