package utils // package utils provides helpers for signing the short-lived flash token

import (
	"errors" // errors wraps parsing failures
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// FlashMessage is one notification shown on the next rendered page.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// flashClaims carries the pending messages plus the standard expiry claims.
type flashClaims struct {
	Messages []FlashMessage `json:"msgs"`
	jwt.RegisteredClaims
}

// ErrInvalidFlash is returned when a flash token is malformed, expired or
// signed with another secret.
var ErrInvalidFlash = errors.New("invalid flash token")

// SignFlash builds an HS256 JWT holding msgs that expires after ttl.  The
// token travels in a cookie across a redirect, so the signature is what
// stops a client from injecting arbitrary notifications.
func SignFlash(secret string, msgs []FlashMessage, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseFlash verifies raw and returns its messages.
func ParseFlash(secret, raw string) ([]FlashMessage, error) {
	var claims flashClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidFlash
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.Join(ErrInvalidFlash, err)
	}
	return claims.Messages, nil
}
