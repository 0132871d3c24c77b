package policy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/adrianliechti/contentkit/pkg/auth"

	"github.com/open-policy-agent/opa/v1/rego"
)

const Query = "data.contentkit.allow"

var ErrForbidden = errors.New("forbidden")

// Policy authorizes authenticated requests with a rego module that defines
// data.contentkit.allow over input.method, input.path, input.user and input.email.
type Policy struct {
	query rego.PreparedEvalQuery
}

func New(ctx context.Context, module string) (*Policy, error) {
	if module == "" {
		return nil, errors.New("empty policy")
	}

	query, err := rego.New(
		rego.Query(Query),
		rego.Module("policy.rego", module),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &Policy{
		query: query,
	}, nil
}

func Load(ctx context.Context, path string) (*Policy, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return New(ctx, string(data))
}

type Input struct {
	Method string
	Path   string

	User  string
	Email string
}

func (p *Policy) Allow(ctx context.Context, input Input) (bool, error) {
	rs, err := p.query.Eval(ctx, rego.EvalInput(map[string]any{
		"method": input.Method,
		"path":   input.Path,

		"user":  input.User,
		"email": input.Email,
	}))

	if err != nil {
		return false, err
	}

	return rs.Allowed(), nil
}

func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		allowed, err := p.Allow(ctx, Input{
			Method: r.Method,
			Path:   r.URL.Path,

			User:  auth.User(ctx),
			Email: auth.Email(ctx),
		})

		if err != nil {
			slog.ErrorContext(ctx, "policy evaluation failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if !allowed {
			http.Error(w, ErrForbidden.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
