package scope

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName carries the signed scope token between requests. The scope
// id is what keys the persisted cart record: the Go stand-in for the
// browser's per-context storage scoping.
const CookieName = "cart_scope"

const tokenTTL = 30 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid scope token")
)

// Issuer mints and verifies session-scope tokens.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue creates a fresh scope id and the signed token wrapping it.
func (i *Issuer) Issue() (token string, scopeID string, err error) {
	scopeID = uuid.NewString()
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   scopeID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", err
	}
	return token, scopeID, nil
}

// Verify returns the scope id carried by a valid token.
func (i *Issuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return i.secret, nil
		})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
