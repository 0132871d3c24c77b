package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/adrianliechti/contentkit/config"
	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/auth"
	"github.com/adrianliechti/contentkit/pkg/auth/static"
	"github.com/adrianliechti/contentkit/pkg/field"
	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/index/memory"
	mcppkg "github.com/adrianliechti/contentkit/pkg/mcp"
	"github.com/adrianliechti/contentkit/pkg/receipt"
	"github.com/adrianliechti/contentkit/pkg/segmenter/heading"
	"github.com/adrianliechti/contentkit/pkg/tool"
	receipttool "github.com/adrianliechti/contentkit/pkg/tool/receipt"
	"github.com/adrianliechti/contentkit/server"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, analyzerID string, request *analyzer.AnalyzeRequest, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	return &analyzer.Operation{ID: "op", State: analyzer.StateRunning}, nil
}

func (stubAnalyzer) AnalyzeBinary(ctx context.Context, analyzerID string, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	return &analyzer.Operation{ID: "op", State: analyzer.StateRunning}, nil
}

func (stubAnalyzer) Result(ctx context.Context, operationID string) (*analyzer.Operation, error) {
	return &analyzer.Operation{
		ID:    operationID,
		State: analyzer.StateSucceeded,

		Result: &analyzer.Result{
			Contents: []analyzer.Content{
				{
					Kind: analyzer.ContentKindDocument,

					Fields: field.Map{
						"TotalAmount": field.Number(4.2),
					},
				},
			},
		},
	}, nil
}

func newConfig(t *testing.T, authorizers ...auth.Provider) *config.Config {
	idx, err := memory.New()
	require.NoError(t, err)

	seg, err := heading.New()
	require.NoError(t, err)

	reader := receipt.NewReader(stubAnalyzer{}, receipt.WithInterval(1))

	receipts, err := receipttool.New(reader)
	require.NoError(t, err)

	tools := []tool.Provider{receipts}

	m, err := mcppkg.New("contentkit", "test", tools...)
	require.NoError(t, err)

	require.NoError(t, idx.Index(context.Background(),
		index.Document{ID: "router_chunk1", FileName: "router.pdf", SectionTitle: "Reset", Content: "Hold the reset button for ten seconds."},
		index.Document{ID: "router_chunk2", FileName: "router.pdf", SectionTitle: "Setup", Content: "Connect the cable."},
	))

	return &config.Config{
		Address: ":0",

		Authorizers: authorizers,

		Analyzer:  stubAnalyzer{},
		Segmenter: seg,
		Index:     idx,

		Receipts: reader,

		Tools: tools,
		MCP:   m,
	}
}

func newServer(t *testing.T, authorizers ...auth.Provider) *httptest.Server {
	s, err := server.New(newConfig(t, authorizers...))
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	return ts
}

func TestChunks(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Post(ts.URL+"/v1/chunks", "text/markdown", strings.NewReader("Intro\n# A\nBody"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chunks []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chunks))

	require.Equal(t, []map[string]string{
		{"title": "Introduction", "content": "Intro"},
		{"title": "A", "content": "# A\n\nBody"},
	}, chunks)
}

func TestSearch(t *testing.T) {
	ts := newServer(t)

	resp, err := http.Get(ts.URL + "/v1/search?q=reset+button")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))

	require.Len(t, results, 1)
	require.Equal(t, "router_chunk1", results[0]["id"])

	resp, err = http.Get(ts.URL + "/v1/search")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceipts(t *testing.T) {
	ts := newServer(t)

	resp, err := http.PostForm(ts.URL+"/v1/receipts", url.Values{"url": {"https://example.com/receipt.jpg"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result receipt.Receipt
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	require.True(t, result.Success)
	require.Equal(t, 4.2, *result.TotalAmount)
}

func TestReceiptsExport(t *testing.T) {
	ts := newServer(t)

	resp, err := http.PostForm(ts.URL+"/v1/receipts", url.Values{"url": {"https://example.com/receipt.jpg"}, "format": {"xlsx"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(receipt.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "https://example.com/receipt.jpg", rows[1][0])
}

func TestReceiptsInvalidURL(t *testing.T) {
	ts := newServer(t)

	resp, err := http.PostForm(ts.URL+"/v1/receipts", url.Values{"url": {"not a url"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	var result receipt.Receipt
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	require.False(t, result.Success)
	require.Equal(t, receipt.ErrInvalidURL, result.Error)
}

func TestUnauthorized(t *testing.T) {
	token, err := static.New("secret")
	require.NoError(t, err)

	ts := newServer(t, token)

	resp, err := http.Get(ts.URL + "/v1/search?q=reset")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/search?q=reset", nil)
	req.Header.Set("Authorization", "Bearer secret")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMCP(t *testing.T) {
	ts := newServer(t)

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{Name: "client"}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + "/api/mcp"}, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	require.Equal(t, "read_receipt", tools.Tools[0].Name)
}
