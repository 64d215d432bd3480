package security

import (
	"time"

	"docuverify/internal/common"
	"docuverify/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies the credential tokens that carry a
// Principal. Constructed once in main and injected; no package-level state.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
	exp  time.Duration
}

func NewTokenIssuer(secret []byte, exp time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth: jwtauth.New("HS256", secret, nil),
		exp:  exp,
	}
}

// Auth exposes the underlying verifier for the router's jwtauth middleware.
func (t *TokenIssuer) Auth() *jwtauth.JWTAuth {
	return t.auth
}

// Expiry is the fixed token lifetime; it doubles as the cookie max-age.
func (t *TokenIssuer) Expiry() time.Duration {
	return t.exp
}

// IssueToken encodes p into a signed, time-bounded token.
func (t *TokenIssuer) IssueToken(p model.Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": p.ID,
		"email":   p.Email,
		"name":    p.Name,
		"role":    string(p.Role),
		"exp":     now.Add(t.exp).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// PrincipalFromClaims rebuilds the Principal from verified token claims.
// A missing or malformed claim surfaces as INVALID_TOKEN.
func PrincipalFromClaims(claims jwt.MapClaims) (model.Principal, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return model.Principal{}, common.E(common.KindInvalidToken, "user_id claim is missing or not a string")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return model.Principal{}, common.E(common.KindInvalidToken, "email claim is missing or not a string")
	}
	name, ok := claims["name"].(string)
	if !ok {
		return model.Principal{}, common.E(common.KindInvalidToken, "name claim is missing or not a string")
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return model.Principal{}, common.E(common.KindInvalidToken, "role claim is missing or not a string")
	}
	role := model.Role(roleStr)
	if !role.Valid() {
		return model.Principal{}, common.E(common.KindInvalidToken, "role claim is not a known role")
	}
	return model.Principal{ID: id, Email: email, Name: name, Role: role}, nil
}
