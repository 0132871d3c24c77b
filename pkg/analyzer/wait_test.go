package analyzer_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/adrianliechti/contentkit/pkg/analyzer"

	"github.com/stretchr/testify/require"
)

type sequencePoller struct {
	mu sync.Mutex

	calls  int
	states []analyzer.State
	result *analyzer.Result
	err    error
}

func (p *sequencePoller) Result(ctx context.Context, operationID string) (*analyzer.Operation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}

	state := p.states[min(p.calls, len(p.states)-1)]
	p.calls++

	op := &analyzer.Operation{
		ID:    operationID,
		State: state,
	}

	switch state {
	case analyzer.StateSucceeded:
		op.Result = p.result

	case analyzer.StateFailed:
		op.Error = &analyzer.Error{Code: "InvalidContent", Message: "unreadable"}
	}

	return op, nil
}

func TestWaitUntilSucceeded(t *testing.T) {
	result := &analyzer.Result{AnalyzerID: "receipts"}

	p := &sequencePoller{
		states: []analyzer.State{analyzer.StateRunning, analyzer.StateRunning, analyzer.StateSucceeded},
		result: result,
	}

	op, err := analyzer.Wait(context.Background(), p, "op-1", time.Millisecond)
	require.NoError(t, err)

	require.Equal(t, 3, p.calls)
	require.Equal(t, analyzer.StateSucceeded, op.State)
	require.Same(t, result, op.Result)
}

func TestWaitTreatsNotStartedAsRunning(t *testing.T) {
	p := &sequencePoller{
		states: []analyzer.State{analyzer.StateNotStarted, analyzer.StateRunning, analyzer.StateNotStarted, analyzer.StateCanceled},
	}

	op, err := analyzer.Wait(context.Background(), p, "op-1", time.Millisecond)
	require.NoError(t, err)

	require.Equal(t, 4, p.calls)
	require.Equal(t, analyzer.StateCanceled, op.State)
	require.Nil(t, op.Result)
}

func TestWaitReturnsFailedAsValue(t *testing.T) {
	p := &sequencePoller{
		states: []analyzer.State{analyzer.StateRunning, analyzer.StateFailed},
	}

	op, err := analyzer.Wait(context.Background(), p, "op-1", time.Millisecond)
	require.NoError(t, err)

	require.Equal(t, analyzer.StateFailed, op.State)
	require.Equal(t, "unreadable", op.Error.Message)
}

func TestWaitReturnsUnknownState(t *testing.T) {
	for _, state := range []analyzer.State{"", "paused"} {
		p := &sequencePoller{
			states: []analyzer.State{analyzer.StateRunning, state},
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		op, err := analyzer.Wait(ctx, p, "op-1", time.Millisecond)
		require.NoError(t, err)

		require.Equal(t, 2, p.calls)
		require.Equal(t, state, op.State)
	}
}

func TestWaitStopsOnCancel(t *testing.T) {
	p := &sequencePoller{
		states: []analyzer.State{analyzer.StateRunning},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := analyzer.Wait(ctx, p, "op-1", 10*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	p.mu.Lock()
	calls := p.calls
	p.mu.Unlock()

	require.GreaterOrEqual(t, calls, 1)

	time.Sleep(30 * time.Millisecond)

	p.mu.Lock()
	defer p.mu.Unlock()

	require.Equal(t, calls, p.calls)
}

func TestWaitSurfacesTransportError(t *testing.T) {
	transport := &analyzer.ResponseError{StatusCode: 503}

	p := &sequencePoller{
		err: transport,
	}

	_, err := analyzer.Wait(context.Background(), p, "op-1", time.Millisecond)
	require.ErrorIs(t, err, transport)
	require.True(t, analyzer.IsTransient(err))
}

func TestWaitRequiresOperationID(t *testing.T) {
	_, err := analyzer.Wait(context.Background(), &sequencePoller{}, "", time.Millisecond)
	require.Error(t, err)
}

func TestIsTransient(t *testing.T) {
	require.False(t, analyzer.IsTransient(nil))
	require.False(t, analyzer.IsTransient(context.Canceled))
	require.False(t, analyzer.IsTransient(&analyzer.ResponseError{StatusCode: 400}))
	require.True(t, analyzer.IsTransient(&analyzer.ResponseError{StatusCode: 429}))
	require.True(t, analyzer.IsTransient(&analyzer.ResponseError{StatusCode: 502}))
	require.False(t, analyzer.IsTransient(errors.New("boom")))
}

func TestIsTransientDeadline(t *testing.T) {
	require.False(t, analyzer.IsTransient(context.DeadlineExceeded))
	require.False(t, analyzer.IsTransient(fmt.Errorf("wait: %w", context.DeadlineExceeded)))

	require.True(t, analyzer.IsTransient(&url.Error{Op: "Get", URL: "https://example.com", Err: context.DeadlineExceeded}))
	require.True(t, analyzer.IsTransient(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}))
	require.False(t, analyzer.IsTransient(&url.Error{Op: "Get", URL: "https://example.com", Err: context.Canceled}))
}

func TestResponseErrorMessage(t *testing.T) {
	err := &analyzer.ResponseError{
		StatusCode: 404,

		Err: &analyzer.Error{Code: "NotFound", Message: "analyzer not found"},
	}

	require.Equal(t, "404 Not Found: NotFound: analyzer not found", err.Error())

	var target *analyzer.Error
	require.ErrorAs(t, err, &target)
	require.Equal(t, "NotFound", target.Code)
}

type fakeManager struct {
	polls int
	final analyzer.State
}

func (m *fakeManager) Analyzers(ctx context.Context) ([]analyzer.Analyzer, error) {
	return nil, nil
}

func (m *fakeManager) CreateAnalyzer(ctx context.Context, analyzerID string, definition analyzer.Analyzer, replace bool) (*analyzer.AnalyzerOperation, error) {
	return &analyzer.AnalyzerOperation{ID: "op-create", State: analyzer.StateRunning}, nil
}

func (m *fakeManager) AnalyzerOperation(ctx context.Context, analyzerID, operationID string) (*analyzer.AnalyzerOperation, error) {
	m.polls++

	if m.polls < 2 {
		return &analyzer.AnalyzerOperation{State: analyzer.StateRunning}, nil
	}

	if m.final != "" {
		return &analyzer.AnalyzerOperation{ID: operationID, State: m.final}, nil
	}

	return &analyzer.AnalyzerOperation{
		ID:    operationID,
		State: analyzer.StateSucceeded,

		Result: &analyzer.Analyzer{AnalyzerID: analyzerID},
	}, nil
}

func TestCreateAnalyzerReturnsUnknownState(t *testing.T) {
	m := &fakeManager{final: "paused"}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	op, err := analyzer.CreateAnalyzer(ctx, m, "receipts", analyzer.Analyzer{}, true, time.Millisecond)
	require.NoError(t, err)

	require.Equal(t, 2, m.polls)
	require.Equal(t, analyzer.State("paused"), op.State)
}

func TestCreateAnalyzerWaits(t *testing.T) {
	m := &fakeManager{}

	op, err := analyzer.CreateAnalyzer(context.Background(), m, "receipts", analyzer.Analyzer{}, true, time.Millisecond)
	require.NoError(t, err)

	require.Equal(t, 2, m.polls)
	require.Equal(t, analyzer.StateSucceeded, op.State)
	require.Equal(t, "receipts", op.Result.AnalyzerID)
}
