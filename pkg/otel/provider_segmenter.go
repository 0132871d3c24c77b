package otel

import (
	"context"

	"github.com/adrianliechti/contentkit/pkg/segmenter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type Segmenter interface {
	Observable
	segmenter.Provider
}

type observableSegmenter struct {
	model    string
	provider string

	segmenter segmenter.Provider
}

func NewSegmenter(provider string, p segmenter.Provider) Segmenter {
	return &observableSegmenter{
		segmenter: p,

		model:    "heading",
		provider: provider,
	}
}

func (p *observableSegmenter) otelSetup() {
}

func (p *observableSegmenter) Segment(ctx context.Context, input string, options *segmenter.SegmentOptions) ([]segmenter.Segment, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "segment "+p.model)
	defer span.End()

	result, err := p.segmenter.Segment(ctx, input, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.SetAttributes(Int("segment.count", len(result)))

	if EnableDebug && options != nil && options.FileName != "" {
		span.SetAttributes(String("file.name", options.FileName))
	}

	return result, err
}
