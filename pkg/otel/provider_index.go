package otel

import (
	"context"

	"github.com/adrianliechti/contentkit/pkg/index"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type Index interface {
	Observable
	index.Provider
}

type observableIndex struct {
	provider string

	index index.Provider
}

func NewIndex(provider string, p index.Provider) Index {
	return &observableIndex{
		index:    p,
		provider: provider,
	}
}

func (p *observableIndex) otelSetup() {
}

func (p *observableIndex) List(ctx context.Context, options *index.ListOptions) (*index.Page[index.Document], error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "list_documents "+p.provider)
	defer span.End()

	page, err := p.index.List(ctx, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return page, err
}

func (p *observableIndex) Index(ctx context.Context, documents ...index.Document) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "index_documents "+p.provider)
	defer span.End()

	span.SetAttributes(Int("index.documents", len(documents)))

	err := p.index.Index(ctx, documents...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (p *observableIndex) Delete(ctx context.Context, ids ...string) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "delete_documents "+p.provider)
	defer span.End()

	if EnableDebug {
		span.SetAttributes(Strings("index.ids", ids))
	}

	err := p.index.Delete(ctx, ids...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (p *observableIndex) Query(ctx context.Context, query string, options *index.QueryOptions) ([]index.Result, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "query "+p.provider)
	defer span.End()

	span.SetAttributes(EndUserAttrs(ctx)...)

	if EnableDebug {
		span.SetAttributes(String("index.query", query))
	}

	results, err := p.index.Query(ctx, query, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.SetAttributes(Int("index.results", len(results)))

	return results, err
}
