package azure

import (
	"time"
)

type Index struct {
	Name string `json:"name"`

	Fields     []Field     `json:"fields"`
	Suggesters []Suggester `json:"suggesters,omitempty"`
}

type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`

	Key bool `json:"key,omitempty"`

	Searchable bool `json:"searchable"`
	Filterable bool `json:"filterable"`
	Sortable   bool `json:"sortable"`

	Analyzer string `json:"analyzer,omitempty"`
}

type Suggester struct {
	Name string `json:"name"`

	SearchMode   string   `json:"searchMode"`
	SourceFields []string `json:"sourceFields"`
}

type Action string

const (
	ActionUpload Action = "upload"
	ActionDelete Action = "delete"
)

type Document struct {
	Action Action `json:"@search.action,omitempty"`

	ID string `json:"Id"`

	FileName     string `json:"FileName,omitempty"`
	SectionTitle string `json:"SectionTitle,omitempty"`
	ChunkIndex   *int   `json:"ChunkIndex,omitempty"`

	Content string `json:"Content,omitempty"`

	IndexedAt *time.Time `json:"IndexedAt,omitempty"`
}

type IndexBatch struct {
	Value []Document `json:"value"`
}

type IndexBatchResult struct {
	Value []IndexResult `json:"value"`
}

type IndexResult struct {
	Key    string `json:"key"`
	Status bool   `json:"status"`

	StatusCode   int    `json:"statusCode"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type SearchRequest struct {
	Search string `json:"search"`

	Count bool `json:"count,omitempty"`
	Top   int  `json:"top,omitempty"`

	Filter  string `json:"filter,omitempty"`
	OrderBy string `json:"orderby,omitempty"`
	Select  string `json:"select,omitempty"`

	Highlight        string `json:"highlight,omitempty"`
	HighlightPreTag  string `json:"highlightPreTag,omitempty"`
	HighlightPostTag string `json:"highlightPostTag,omitempty"`
}

type SearchResponse struct {
	Count *int `json:"@odata.count,omitempty"`

	Value []SearchResult `json:"value"`
}

type SearchResult struct {
	Document

	Score      float32             `json:"@search.score"`
	Highlights map[string][]string `json:"@search.highlights,omitempty"`
}
