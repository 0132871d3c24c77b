package otel

import (
	"context"

	"github.com/adrianliechti/contentkit/pkg/analyzer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Analyzer interface {
	Observable
	analyzer.Provider
}

type observableAnalyzer struct {
	provider string

	analyzer analyzer.Provider

	submits metric.Int64Counter
	polls   metric.Int64Counter
	uploads metric.Int64Histogram
}

func NewAnalyzer(provider string, p analyzer.Provider) Analyzer {
	meter := otel.Meter(instrumentationName)

	submits, _ := meter.Int64Counter("analyzer.submits",
		metric.WithDescription("Number of analyze operations submitted"),
	)

	polls, _ := meter.Int64Counter("analyzer.polls",
		metric.WithDescription("Number of operation status polls"),
	)

	uploads, _ := meter.Int64Histogram("analyzer.upload.size",
		metric.WithDescription("Size of files submitted for analysis"),
		metric.WithUnit("By"),
	)

	return &observableAnalyzer{
		analyzer: p,
		provider: provider,

		submits: submits,
		polls:   polls,
		uploads: uploads,
	}
}

func (p *observableAnalyzer) otelSetup() {
}

func (p *observableAnalyzer) Analyze(ctx context.Context, analyzerID string, request *analyzer.AnalyzeRequest, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "analyze "+analyzerID)
	defer span.End()

	op, err := p.analyzer.Analyze(ctx, analyzerID, request, options)

	p.submit(ctx, span, analyzerID, op, err)

	return op, err
}

func (p *observableAnalyzer) AnalyzeBinary(ctx context.Context, analyzerID string, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "analyze_binary "+analyzerID)
	defer span.End()

	if EnableDebug {
		span.SetAttributes(
			String("file.name", file.Name),
			String("file.content_type", file.ContentType),
			Int("file.size", len(file.Content)),
		)
	}

	p.uploads.Record(ctx, int64(len(file.Content)), metric.WithAttributes(
		String("analyzer.provider", p.provider),
		String("analyzer.id", analyzerID),
	))

	op, err := p.analyzer.AnalyzeBinary(ctx, analyzerID, file, options)

	p.submit(ctx, span, analyzerID, op, err)

	return op, err
}

func (p *observableAnalyzer) Result(ctx context.Context, operationID string) (*analyzer.Operation, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "analyze_result")
	defer span.End()

	span.SetAttributes(String("analyzer.operation", operationID))

	op, err := p.analyzer.Result(ctx, operationID)

	p.polls.Add(ctx, 1, metric.WithAttributes(String("analyzer.provider", p.provider)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return op, err
	}

	span.SetAttributes(String("analyzer.state", string(op.State)))

	return op, err
}

func (p *observableAnalyzer) submit(ctx context.Context, span trace.Span, analyzerID string, op *analyzer.Operation, err error) {
	attrs := KeyValues(
		[]KeyValue{
			String("analyzer.provider", p.provider),
			String("analyzer.id", analyzerID),
		},
		EndUserAttrs(ctx),
	)

	span.SetAttributes(attrs...)

	p.submits.Add(ctx, 1, metric.WithAttributes(
		String("analyzer.provider", p.provider),
		String("analyzer.id", analyzerID),
	))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return
	}

	span.SetAttributes(String("analyzer.operation", op.ID))
}
