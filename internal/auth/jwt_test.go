package auth

import (
	"testing"

	"pos-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	user := &models.User{
		Name:  "Ayşe",
		Email: "ayse@example.com",
		Role:  models.RoleStaff,
	}
	user.ID = 42

	tokenString, err := GenerateToken(secret, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims := &JWTCustomClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ayse@example.com", claims.Email)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateTokenWrongSecret(t *testing.T) {
	user := &models.User{Email: "ayse@example.com", Role: models.RoleAdmin}
	user.ID = 1

	tokenString, err := GenerateToken("dogru-secret", user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenString, &JWTCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("yanlis-secret"), nil
	})
	assert.Error(t, err)
}
