package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCSRFToken is returned when a guarded request carries no token.
	ErrMissingCSRFToken = errors.New("missing csrf token")
	// ErrInvalidCSRFToken is returned when a token fails signature or expiry checks.
	ErrInvalidCSRFToken = errors.New("invalid csrf token")
)

// CSRF issues and verifies short-lived anti-forgery tokens. Tokens are
// HMAC-signed JWTs so verification needs no server-side storage.
type CSRF struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCSRF creates a token service with the given signing secret and lifetime.
func NewCSRF(secret string, ttl time.Duration) *CSRF {
	return &CSRF{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a fresh signed token.
func (c *CSRF) Issue() (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   "csrf",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing csrf token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature and expiry.
func (c *CSRF) Verify(token string) error {
	if token == "" {
		return ErrMissingCSRFToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithLeeway(5*time.Second))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCSRFToken, err)
	}
	if !parsed.Valid {
		return ErrInvalidCSRFToken
	}
	if claims.Subject != "csrf" {
		return fmt.Errorf("%w: wrong subject", ErrInvalidCSRFToken)
	}
	return nil
}
