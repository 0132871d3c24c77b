package header

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/auth"
)

var _ auth.Provider = &Provider{}

// Provider trusts the identity headers set by an authenticating proxy.
type Provider struct {
	userHeader  string
	emailHeader string
}

type Option func(*Provider)

func New(options ...Option) (*Provider, error) {
	p := &Provider{
		userHeader:  "X-Forwarded-User",
		emailHeader: "X-Forwarded-Email",
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	user := strings.TrimSpace(r.Header.Get(p.userHeader))
	email := strings.TrimSpace(r.Header.Get(p.emailHeader))

	if user == "" && email == "" {
		return ctx, errors.New("no user information found in headers")
	}

	if email == "" {
		if addr, err := mail.ParseAddress(user); err == nil && addr.Address == user {
			email = user
		}
	}

	if user != "" {
		ctx = context.WithValue(ctx, auth.UserContextKey, user)
	}

	if email != "" {
		ctx = context.WithValue(ctx, auth.EmailContextKey, email)
	}

	return ctx, nil
}
