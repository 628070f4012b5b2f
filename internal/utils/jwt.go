// Package utils provides helper functions for token creation and password
// hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "asset-admin server"

// ActorKey is the echo context key the auth middleware stores the verified
// Claims under and handlers read them from. Shared here so the two sides
// cannot drift apart.
const ActorKey = "actor"

// Claims is the authenticated actor extracted from a verified token. A
// Company of zero means the actor has no assigned company (admins).
type Claims struct {
	UserID  int64
	Name    string
	Role    string
	Company int64
}

var errInvalidToken = errors.New("invalid token")

// NewToken builds and signs an HS256 JWT for a user. The token carries the
// subject (user id), display name, role and company claims alongside the
// standard iss/exp/iat set. company may be nil for admins.
func NewToken(secret string, userID int64, name, role string, company *int64, ttlHours int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss":  issuer,
		"sub":  userID,
		"name": name,
		"role": role,
		"exp":  now.Add(time.Duration(ttlHours) * time.Hour).Unix(),
		"iat":  now.Unix(),
	}
	if company != nil {
		claims["company"] = *company
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies an HS256 token and extracts the actor claims.
// Expired, malformed or wrongly signed tokens all yield an error.
func ParseToken(secret, raw string) (*Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	c := &Claims{}
	sub, ok := asInt64(mc["sub"])
	if !ok {
		return nil, errInvalidToken
	}
	c.UserID = sub
	if name, ok := mc["name"].(string); ok {
		c.Name = name
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	if company, ok := asInt64(mc["company"]); ok {
		c.Company = company
	}
	return c, nil
}

// asInt64 copes with JSON numbers decoding as float64 inside MapClaims.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	default:
		return 0, false
	}
}
