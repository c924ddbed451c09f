package jwt

import (
	"context"
	"testing"

	"github.com/apexhr/hrm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h")

	companyID := "company-1"
	employeeID := "employee-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "hr@example.com", &employeeID, &companyID, user.RoleHR)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_NilOptionalClaims(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h")

	tokenString, _, err := svc.GenerateAccessToken("user-1", "admin@example.com", nil, nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["company_id"])
	assert.Nil(t, claims["employee_id"])
}

func TestGenerateRefreshToken_Type(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h")

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, "user-1", claims["user_id"])
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "168h")

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))
	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration", "168h")

	_, _, err := svc.GenerateAccessToken("user-1", "x@example.com", nil, nil, user.RoleEmployee)
	assert.Error(t, err)
}
