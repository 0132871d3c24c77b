package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/adrianliechti/contentkit/pkg/index"

	"github.com/google/uuid"
)

var _ index.Provider = &Provider{}

type Provider struct {
	mu sync.RWMutex

	documents map[string]index.Document
}

type Option func(*Provider)

func New(options ...Option) (*Provider, error) {
	p := &Provider{
		documents: make(map[string]index.Document),
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

func (p *Provider) List(ctx context.Context, options *index.ListOptions) (*index.Page[index.Document], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	items := slices.Collect(maps.Values(p.documents))

	return index.Paginate(items, options), nil
}

func (p *Provider) Index(ctx context.Context, documents ...index.Document) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, d := range documents {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}

		if d.IndexedAt.IsZero() {
			d.IndexedAt = time.Now().UTC()
		}

		p.documents[d.ID] = d
	}

	return nil
}

func (p *Provider) Delete(ctx context.Context, ids ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range ids {
		delete(p.documents, id)
	}

	return nil
}

func (p *Provider) Query(ctx context.Context, query string, options *index.QueryOptions) ([]index.Result, error) {
	p.mu.RLock()
	items := slices.Collect(maps.Values(p.documents))
	p.mu.RUnlock()

	return index.Rank(query, items, options), nil
}
