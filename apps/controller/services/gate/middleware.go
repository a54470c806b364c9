package gate

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
)

type contextKey string

const authenticatedKey contextKey = "gate.authenticated"

// Middleware marks requests that carry a valid token. It looks at the
// token cookie first, then a bearer Authorization header, so both browser
// sessions and CLI clients work.
func (s *Service) Middleware() func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, _ := humachi.Unwrap(ctx)

		var tokenStr string
		if c, err := r.Cookie("token"); err == nil {
			tokenStr = c.Value
		}
		if tokenStr == "" {
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if tokenStr != "" && s.VerifyToken(tokenStr) == nil {
			ctx = huma.WithValue(ctx, authenticatedKey, true)
		}
		next(ctx)
	}
}

// Authenticated reports whether the middleware validated a token on this
// request.
func Authenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedKey).(bool)
	return ok
}
