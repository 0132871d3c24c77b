package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserContextKey  contextKey = "auth.user"
	EmailContextKey contextKey = "auth.email"
)

var ErrUnauthorized = errors.New("unauthorized")

type Provider interface {
	Authenticate(ctx context.Context, r *http.Request) (context.Context, error)
}

func User(ctx context.Context) string {
	val, _ := ctx.Value(UserContextKey).(string)
	return val
}

func Email(ctx context.Context) string {
	val, _ := ctx.Value(EmailContextKey).(string)
	return val
}

// Middleware admits a request as soon as one provider authenticates it.
// Without providers every request is admitted.
func Middleware(providers ...Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(providers) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var errs []error

			for _, p := range providers {
				ctx, err := p.Authenticate(r.Context(), r)

				if err == nil {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				errs = append(errs, err)
			}

			slog.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "error", errors.Join(errs...))

			http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		})
	}
}

// BearerToken returns the token of a "Bearer" authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")

	if header == "" {
		return "", errors.New("missing authorization header")
	}

	scheme, token, ok := strings.Cut(header, " ")

	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid authorization header")
	}

	return strings.TrimSpace(token), nil
}
