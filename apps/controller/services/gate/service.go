// Package gate implements the controller's password wall: a shared-secret
// check at login and short-lived signed tokens for everything behind it.
// Tokens carry only timestamps; there are no user accounts.
package gate

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("gate: invalid token")

type Service struct {
	authSecret []byte
	gateSecret string
	tokenTTL   time.Duration
}

// New builds a gate service. authSecret signs tokens; gateSecret is the
// optional shared password — when empty the wall is open and any secret
// passes.
func New(authSecret, gateSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Service{
		authSecret: []byte(authSecret),
		gateSecret: gateSecret,
		tokenTTL:   tokenTTL,
	}
}

// CheckSecret reports whether the presented secret opens the wall. An
// unconfigured wall accepts anything.
func (s *Service) CheckSecret(secret string) bool {
	if s.gateSecret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.gateSecret)) == 1
}

// IssueToken mints a signed token valid for the configured TTL.
func (s *Service) IssueToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.authSecret)
}

// VerifyToken validates a token's signature and expiry.
func (s *Service) VerifyToken(tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.authSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// TokenTTL returns the token lifetime, for cookie Max-Age.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}
