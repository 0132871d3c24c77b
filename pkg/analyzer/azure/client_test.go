package azure_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/analyzer/azure"
	"github.com/adrianliechti/contentkit/pkg/field"

	"github.com/stretchr/testify/require"
)

const testToken = "secret"

func newServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	polls := new(atomic.Int32)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /contentunderstanding/analyzers/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, testToken, r.Header.Get("Ocp-Apim-Subscription-Key"))
		require.Equal(t, azure.DefaultAPIVersion, r.URL.Query().Get("api-version"))

		switch r.PathValue("id") {
		case "receipts:analyzeBinary":
			require.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
			require.Equal(t, "1-2", r.URL.Query().Get("range"))

			data, _ := io.ReadAll(r.Body)
			require.Equal(t, "JPEG", string(data))

			// no id in the body, only the header
			w.Header().Set("Operation-Location", "http://"+r.Host+"/contentunderstanding/analyzerResults/op-binary?api-version=2025-11-01")
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"status": "NotStarted"}`))

		case "receipts:analyze":
			var req analyzer.AnalyzeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Inputs, 1)
			require.Equal(t, "https://example.com/receipt.jpg", req.Inputs[0].URL)
			require.Empty(t, req.Inputs[0].Data)

			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"id": "op-url", "status": "Running"}`))

		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"code": "ModelNotFound", "message": "analyzer not found"}}`))
		}
	})

	mux.HandleFunc("GET /contentunderstanding/analyzerResults/{id}", func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)

		if n < 3 {
			w.Write([]byte(`{"id": "` + r.PathValue("id") + `", "status": "Running"}`))
			return
		}

		w.Write([]byte(`{
			"id": "` + r.PathValue("id") + `",
			"status": "Succeeded",
			"result": {
				"analyzerId": "receipts",
				"contents": [{
					"kind": "document",
					"markdown": "TOTAL 9.90",
					"fields": {"TotalAmount": {"type": "number", "valueNumber": 9.9}}
				}]
			}
		}`))
	})

	mux.HandleFunc("GET /contentunderstanding/analyzers", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.Write([]byte(`{"value": [{"analyzerId": "receipts", "status": "ready"}]}`))
			return
		}

		w.Write([]byte(`{
			"value": [{"analyzerId": "prebuilt-documentSearch", "status": "ready"}],
			"nextLink": "http://` + r.Host + `/contentunderstanding/analyzers?api-version=2025-11-01&page=2"
		}`))
	})

	mux.HandleFunc("PUT /contentunderstanding/analyzers/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("allowReplace"))

		var def analyzer.Analyzer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&def))
		require.Equal(t, "prebuilt-document", def.BaseAnalyzerID)

		def.AnalyzerID = r.PathValue("id")
		def.Status = analyzer.AnalyzerStatusCreating

		w.Header().Set("Operation-Location", "http://"+r.Host+"/contentunderstanding/analyzers/"+r.PathValue("id")+"/operations/op-create?api-version=2025-11-01")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(def)
	})

	mux.HandleFunc("GET /contentunderstanding/analyzers/{id}/operations/{op}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "` + r.PathValue("op") + `", "status": "Succeeded", "result": {"analyzerId": "` + r.PathValue("id") + `", "status": "ready"}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, polls
}

func TestAnalyzeBinaryAndWait(t *testing.T) {
	server, polls := newServer(t)

	c, err := azure.New(server.URL, azure.WithToken(testToken), azure.WithClient(server.Client()))
	require.NoError(t, err)

	ctx := context.Background()

	file := analyzer.File{
		Name: "receipt.jpg",

		Content:     []byte("JPEG"),
		ContentType: "image/jpeg",
	}

	op, err := c.AnalyzeBinary(ctx, "receipts", file, &analyzer.AnalyzeOptions{Range: "1-2"})
	require.NoError(t, err)
	require.Equal(t, "op-binary", op.ID)
	require.Equal(t, analyzer.StateNotStarted, op.State)

	op, err = analyzer.Wait(ctx, c, op.ID, time.Millisecond)
	require.NoError(t, err)

	require.EqualValues(t, 3, polls.Load())
	require.Equal(t, analyzer.StateSucceeded, op.State)

	doc, ok := op.Result.Document()
	require.True(t, ok)

	total, ok := field.NumberOf(doc.Fields, "TotalAmount")
	require.True(t, ok)
	require.Equal(t, 9.9, total)
}

func TestAnalyzeByURL(t *testing.T) {
	server, _ := newServer(t)

	c, err := azure.New(server.URL+"/", azure.WithToken(testToken), azure.WithClient(server.Client()))
	require.NoError(t, err)

	request := &analyzer.AnalyzeRequest{
		Inputs: []analyzer.Input{
			{URL: "https://example.com/receipt.jpg"},
		},
	}

	op, err := c.Analyze(context.Background(), "receipts", request, nil)
	require.NoError(t, err)
	require.Equal(t, "op-url", op.ID)
	require.Equal(t, analyzer.StateRunning, op.State)
}

func TestErrorResponse(t *testing.T) {
	server, _ := newServer(t)

	c, err := azure.New(server.URL, azure.WithToken(testToken), azure.WithClient(server.Client()))
	require.NoError(t, err)

	_, err = c.AnalyzeBinary(context.Background(), "unknown", analyzer.File{Content: []byte("x")}, nil)
	require.Error(t, err)

	var respErr *analyzer.ResponseError
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, http.StatusNotFound, respErr.StatusCode)
	require.Equal(t, "ModelNotFound", respErr.Err.Code)
	require.False(t, analyzer.IsTransient(err))
}

func TestAnalyzers(t *testing.T) {
	server, _ := newServer(t)

	c, err := azure.New(server.URL, azure.WithToken(testToken), azure.WithClient(server.Client()))
	require.NoError(t, err)

	analyzers, err := c.Analyzers(context.Background())
	require.NoError(t, err)
	require.Len(t, analyzers, 2)
	require.Equal(t, "prebuilt-documentSearch", analyzers[0].AnalyzerID)
	require.Equal(t, "receipts", analyzers[1].AnalyzerID)
}

func TestCreateAnalyzer(t *testing.T) {
	server, _ := newServer(t)

	c, err := azure.New(server.URL, azure.WithToken(testToken), azure.WithClient(server.Client()))
	require.NoError(t, err)

	ctx := context.Background()

	definition := analyzer.Analyzer{
		BaseAnalyzerID: "prebuilt-document",
		Description:    "receipts",

		FieldSchema: &analyzer.FieldSchema{
			Fields: map[string]analyzer.FieldDefinition{
				"TotalAmount": {Type: "number", Method: analyzer.GenerationMethodExtract},
			},
		},
	}

	op, err := c.CreateAnalyzer(ctx, "receipts", definition, true)
	require.NoError(t, err)
	require.Equal(t, "op-create", op.ID)
	require.Equal(t, analyzer.StateRunning, op.State)

	op, err = c.AnalyzerOperation(ctx, "receipts", op.ID)
	require.NoError(t, err)
	require.Equal(t, analyzer.StateSucceeded, op.State)
	require.Equal(t, analyzer.AnalyzerStatusReady, op.Result.Status)
}

func TestNewRequiresURL(t *testing.T) {
	_, err := azure.New("")
	require.Error(t, err)
}
