package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
)

const DefaultAnalyzer = "scontrini"

type Reader struct {
	provider analyzer.Provider

	analyzer string
	interval time.Duration
}

type Option func(*Reader)

func WithAnalyzer(id string) Option {
	return func(r *Reader) {
		if id != "" {
			r.analyzer = id
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(r *Reader) {
		r.interval = interval
	}
}

func NewReader(provider analyzer.Provider, options ...Option) *Reader {
	r := &Reader{
		provider: provider,

		analyzer: DefaultAnalyzer,
		interval: 500 * time.Millisecond,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// ReadURL analyzes the receipt image behind an absolute http or https url.
// An invalid url yields an unsuccessful receipt without contacting the service.
func (r *Reader) ReadURL(ctx context.Context, imageURL string) (Receipt, error) {
	imageURL = strings.TrimSpace(imageURL)

	if err := ValidateURL(imageURL); err != nil {
		return Receipt{Error: ErrInvalidURL}, nil
	}

	request := &analyzer.AnalyzeRequest{
		Inputs: []analyzer.Input{
			{
				URL: imageURL,
			},
		},
	}

	slog.InfoContext(ctx, "analyzing receipt", "url", imageURL, "analyzer", r.analyzer)

	op, err := analyzer.Analyze(ctx, r.provider, r.analyzer, request, r.interval)

	if err != nil {
		return Receipt{}, err
	}

	return FromOperation(op), nil
}

func (r *Reader) ReadFile(ctx context.Context, file analyzer.File) (Receipt, error) {
	if len(file.Content) == 0 {
		return Receipt{}, fmt.Errorf("%w: empty file", analyzer.ErrInvalidInput)
	}

	slog.InfoContext(ctx, "analyzing receipt", "file", file.Name, "analyzer", r.analyzer)

	op, err := analyzer.AnalyzeBinary(ctx, r.provider, r.analyzer, file, r.interval)

	if err != nil {
		return Receipt{}, err
	}

	slog.InfoContext(ctx, "receipt analyzed", "file", file.Name, "operation", op.ID, "status", op.State)

	return FromOperation(op), nil
}

func ValidateURL(s string) error {
	s = strings.TrimSpace(s)

	if s == "" {
		return fmt.Errorf("%w: missing url", analyzer.ErrInvalidInput)
	}

	u, err := url.Parse(s)

	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: invalid url %q", analyzer.ErrInvalidInput, s)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", analyzer.ErrInvalidInput, u.Scheme)
	}

	return nil
}
