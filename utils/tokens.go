package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token.
type TokenClaims struct {
	UserID   uint
	Username string
	Role     string
}

// NewAccessToken signs an HS256 JWT for a user. TTL comes from the caller so
// tests can issue short-lived tokens.
func NewAccessToken(secret string, claims TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      float64(claims.UserID),
		"username": claims.Username,
		"role":     claims.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})
	return t.SignedString([]byte(secret))
}

// ParseAccessToken validates the signature and expiry and returns the claims.
func ParseAccessToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid claims")
	}

	out := TokenClaims{}
	if sub, ok := mc["sub"].(float64); ok {
		out.UserID = uint(sub)
	}
	if u, ok := mc["username"].(string); ok {
		out.Username = u
	}
	if r, ok := mc["role"].(string); ok {
		out.Role = r
	}
	if out.UserID == 0 {
		return TokenClaims{}, errors.New("invalid subject")
	}
	return out, nil
}
