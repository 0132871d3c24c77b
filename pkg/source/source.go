package source

import (
	"context"
	"mime"
	"path"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
)

type File = analyzer.File

type Provider interface {
	Files(ctx context.Context) ([]File, error)
}

// ContentType guesses the content type of a file from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))

	if ext == "" {
		return "application/octet-stream"
	}

	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}

	return "application/octet-stream"
}
