package receipt_test

import (
	"context"
	"testing"
	"time"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/field"
	"github.com/adrianliechti/contentkit/pkg/receipt"
	"github.com/adrianliechti/contentkit/pkg/tool"
	receipttool "github.com/adrianliechti/contentkit/pkg/tool/receipt"

	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	requests []*analyzer.AnalyzeRequest
}

func (p *staticProvider) Analyze(ctx context.Context, analyzerID string, request *analyzer.AnalyzeRequest, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	p.requests = append(p.requests, request)

	return &analyzer.Operation{ID: "op", State: analyzer.StateRunning}, nil
}

func (p *staticProvider) AnalyzeBinary(ctx context.Context, analyzerID string, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	return &analyzer.Operation{ID: "op", State: analyzer.StateRunning}, nil
}

func (p *staticProvider) Result(ctx context.Context, operationID string) (*analyzer.Operation, error) {
	return &analyzer.Operation{
		ID:    operationID,
		State: analyzer.StateSucceeded,

		Result: &analyzer.Result{
			Contents: []analyzer.Content{
				{
					Kind: analyzer.ContentKindDocument,

					Fields: field.Map{
						"TotalAmount": field.Number(4.2),
						"InvoiceDate": field.Date("2025-02-02"),
					},
				},
			},
		},
	}, nil
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	p := &staticProvider{}

	c, err := receipttool.New(receipt.NewReader(p, receipt.WithInterval(time.Millisecond)))
	require.NoError(t, err)

	tools, err := c.Tools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "read_receipt", tools[0].Name)

	result, err := c.Execute(ctx, "read_receipt", map[string]any{"imageUrl": "https://example.com/r.jpg"})
	require.NoError(t, err)

	r := result.(receipt.Receipt)
	require.True(t, r.Success)
	require.Equal(t, 4.2, *r.TotalAmount)
	require.Equal(t, "2025-02-02", *r.Date)

	require.Len(t, p.requests, 1)
	require.Equal(t, "https://example.com/r.jpg", p.requests[0].Inputs[0].URL)

	result, err = c.Execute(ctx, "read_receipt", map[string]any{"imageUrl": "file:///etc/passwd"})
	require.NoError(t, err)
	require.False(t, result.(receipt.Receipt).Success)
	require.Len(t, p.requests, 1)

	_, err = c.Execute(ctx, "read_receipt", map[string]any{"imageUrl": " "})
	require.Error(t, err)

	_, err = c.Execute(ctx, "crawl_website", nil)
	require.ErrorIs(t, err, tool.ErrInvalidTool)
}
