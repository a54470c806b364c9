package sdk

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the CLI-friendly view of a session token's payload. Our
// tokens carry only timestamps; parsing here skips signature verification,
// so use it for display and local expiry checks, never for authorization.
type TokenClaims struct {
	Iat int64
	Exp int64
}

// ParseTokenClaims extracts raw claims from a JWT without verifying its
// signature.
func ParseTokenClaims(tokenStr string) (jwt.MapClaims, error) {
	var claims jwt.MapClaims
	parser := new(jwt.Parser)
	_, _, err := parser.ParseUnverified(tokenStr, &claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// FromToken reads a token's timestamps without verification. It tolerates
// both float64 and int64 forms per the jwt library's decoding behavior.
func FromToken(tokenStr string) (*TokenClaims, error) {
	mc, err := ParseTokenClaims(tokenStr)
	if err != nil {
		return nil, err
	}

	tc := &TokenClaims{}
	if iat, ok := mc["iat"]; ok {
		switch v := iat.(type) {
		case float64:
			tc.Iat = int64(v)
		case int64:
			tc.Iat = v
		}
	}
	if exp, ok := mc["exp"]; ok {
		switch v := exp.(type) {
		case float64:
			tc.Exp = int64(v)
		case int64:
			tc.Exp = v
		}
	}
	return tc, nil
}

// IsTokenExpired returns true when the token is expired or within the
// provided skew window. Tokens without an exp claim never expire.
func IsTokenExpired(token string, skew time.Duration) (bool, error) {
	if token == "" {
		return true, nil
	}
	tc, err := FromToken(token)
	if err != nil {
		return true, err
	}
	if tc.Exp == 0 {
		return false, nil
	}
	expiresAt := time.Unix(tc.Exp, 0).Add(-skew)
	return time.Now().After(expiresAt), nil
}
