package auth

import (
	"testing"

	"mastercheffpdv-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 5, Email: "chef@mastercheff.com", Role: models.RoleAdmin}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	require.Equal(t, uint(5), claims.UserID)
	require.Equal(t, "chef@mastercheff.com", claims.Email)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestGenerateToken_WrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 5, Email: "chef@mastercheff.com", Role: models.RoleCashier}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("outro-segredo-completamente-diferente"), nil
	})
	require.Error(t, err)
}
