package security

import (
	"testing"
	"time"

	"docuverify/internal/common"
	"docuverify/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, CheckPasswordHash("secret1", "not-a-hash"))
}

func TestIssueTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	principal := model.Principal{
		ID:    "user-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  model.RoleCitizen,
	}

	tokenString, err := issuer.IssueToken(principal)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := issuer.Auth().Decode(tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(t.Context())
	require.NoError(t, err)

	decoded, err := PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, principal, decoded)
}

func TestPrincipalFromClaims(t *testing.T) {
	valid := jwt.MapClaims{
		"user_id": "user-1",
		"email":   "asha@example.com",
		"name":    "Asha",
		"role":    "AdminTier1",
	}

	principal, err := PrincipalFromClaims(valid)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdminTier1, principal.Role)

	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{"missing user_id", func(c jwt.MapClaims) { delete(c, "user_id") }},
		{"empty user_id", func(c jwt.MapClaims) { c["user_id"] = "" }},
		{"missing email", func(c jwt.MapClaims) { delete(c, "email") }},
		{"missing name", func(c jwt.MapClaims) { delete(c, "name") }},
		{"missing role", func(c jwt.MapClaims) { delete(c, "role") }},
		{"unknown role", func(c jwt.MapClaims) { c["role"] = "SuperAdmin" }},
		{"non-string role", func(c jwt.MapClaims) { c["role"] = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := jwt.MapClaims{}
			for k, v := range valid {
				claims[k] = v
			}
			tt.mutate(claims)

			_, err := PrincipalFromClaims(claims)
			require.Error(t, err)
			assert.Equal(t, common.KindInvalidToken, common.KindOf(err))
		})
	}
}
