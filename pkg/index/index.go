package index

import (
	"context"
	"time"
)

type Provider interface {
	List(ctx context.Context, options *ListOptions) (*Page[Document], error)

	Index(ctx context.Context, documents ...Document) error
	Delete(ctx context.Context, ids ...string) error

	Query(ctx context.Context, query string, options *QueryOptions) ([]Result, error)
}

type Document struct {
	ID string `json:"id"`

	FileName     string `json:"fileName,omitempty"`
	SectionTitle string `json:"sectionTitle,omitempty"`
	ChunkIndex   int    `json:"chunkIndex"`

	Content string `json:"content"`

	IndexedAt time.Time `json:"indexedAt"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

type Result struct {
	Document

	Score      float32  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}

type Page[T any] struct {
	Items []T

	Cursor string
}

type ListOptions struct {
	Limit  *int
	Cursor string
}

type QueryOptions struct {
	Limit *int

	Filters map[string]string
}
