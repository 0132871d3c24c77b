package analyzer

import (
	"context"
	"errors"
	"time"
)

const DefaultInterval = time.Second

// Wait polls the operation while it is pending and returns it in the first
// other state, including states it does not recognize. The first
// poll happens immediately; between polls it sleeps for interval. Failed and
// canceled operations are returned without error, callers branch on State.
// Cancelling ctx aborts the wait with ctx.Err().
func Wait(ctx context.Context, p Poller, operationID string, interval time.Duration) (*Operation, error) {
	if operationID == "" {
		return nil, errors.New("missing operation id")
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	for {
		op, err := p.Result(ctx, operationID)

		if err != nil {
			return nil, err
		}

		if op.State.Terminal() {
			return op, nil
		}

		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		return nil
	}
}

// Analyze submits a request and waits for its completion.
func Analyze(ctx context.Context, p Provider, analyzerID string, request *AnalyzeRequest, interval time.Duration) (*Operation, error) {
	op, err := p.Analyze(ctx, analyzerID, request, nil)

	if err != nil {
		return nil, err
	}

	if op.State.Terminal() {
		return op, nil
	}

	return Wait(ctx, p, op.ID, interval)
}

// AnalyzeBinary submits a file and waits for its completion.
func AnalyzeBinary(ctx context.Context, p Provider, analyzerID string, file File, interval time.Duration) (*Operation, error) {
	op, err := p.AnalyzeBinary(ctx, analyzerID, file, nil)

	if err != nil {
		return nil, err
	}

	if op.State.Terminal() {
		return op, nil
	}

	return Wait(ctx, p, op.ID, interval)
}

// CreateAnalyzer submits an analyzer definition and polls its creation
// operation until it is terminal.
func CreateAnalyzer(ctx context.Context, m Manager, analyzerID string, definition Analyzer, replace bool, interval time.Duration) (*AnalyzerOperation, error) {
	op, err := m.CreateAnalyzer(ctx, analyzerID, definition, replace)

	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	for op.State.Pending() {
		if op.ID == "" {
			return nil, errors.New("missing operation id")
		}

		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}

		id := op.ID

		op, err = m.AnalyzerOperation(ctx, analyzerID, id)

		if err != nil {
			return nil, err
		}

		if op.ID == "" {
			op.ID = id
		}
	}

	return op, nil
}
