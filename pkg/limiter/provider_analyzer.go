package limiter

import (
	"context"

	"github.com/adrianliechti/contentkit/pkg/analyzer"

	"golang.org/x/time/rate"
)

type Analyzer interface {
	Limiter
	analyzer.Provider
}

type limitedAnalyzer struct {
	limiter  *rate.Limiter
	provider analyzer.Provider
}

// NewAnalyzer throttles submissions and polls against a shared rate limit.
func NewAnalyzer(l *rate.Limiter, p analyzer.Provider) Analyzer {
	return &limitedAnalyzer{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedAnalyzer) limiterSetup() {
}

func (p *limitedAnalyzer) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}

	return p.limiter.Wait(ctx)
}

func (p *limitedAnalyzer) Analyze(ctx context.Context, analyzerID string, request *analyzer.AnalyzeRequest, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	return p.provider.Analyze(ctx, analyzerID, request, options)
}

func (p *limitedAnalyzer) AnalyzeBinary(ctx context.Context, analyzerID string, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	return p.provider.AnalyzeBinary(ctx, analyzerID, file, options)
}

func (p *limitedAnalyzer) Result(ctx context.Context, operationID string) (*analyzer.Operation, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	return p.provider.Result(ctx, operationID)
}
