package dir

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/source"
)

var _ source.Provider = &Provider{}

// Provider reads the regular files of a directory, without descending
// into subdirectories.
type Provider struct {
	path string

	extensions []string
}

type Option func(*Provider)

// WithExtensions restricts the files to the given extensions, e.g. ".pdf".
func WithExtensions(extensions ...string) Option {
	return func(p *Provider) {
		for _, ext := range extensions {
			p.extensions = append(p.extensions, strings.ToLower(ext))
		}
	}
}

func New(path string, options ...Option) (*Provider, error) {
	if path == "" {
		return nil, errors.New("invalid path")
	}

	p := &Provider{
		path: path,
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

func (p *Provider) Files(ctx context.Context) ([]source.File, error) {
	entries, err := os.ReadDir(p.path)

	if err != nil {
		return nil, err
	}

	var result []source.File

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		if len(p.extensions) > 0 && !slices.Contains(p.extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(p.path, e.Name()))

		if err != nil {
			return nil, err
		}

		result = append(result, source.File{
			Name: e.Name(),

			Content:     data,
			ContentType: source.ContentType(e.Name()),
		})
	}

	return result, nil
}
