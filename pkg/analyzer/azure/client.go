package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
)

var (
	_ analyzer.Provider = &Client{}
	_ analyzer.Manager  = &Client{}
)

type Client struct {
	client *http.Client

	url   string
	token string

	version string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: defaultClient(),

		url:     strings.TrimRight(url, "/"),
		version: DefaultAPIVersion,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) AnalyzeBinary(ctx context.Context, analyzerID string, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	if options == nil {
		options = new(analyzer.AnalyzeOptions)
	}

	query := analyzeQuery(options)

	if options.Range != "" {
		query.Set("range", options.Range)
	}

	contentType := file.ContentType

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("analyzers/"+url.PathEscape(analyzerID)+":analyzeBinary", query), bytes.NewReader(file.Content))
	req.Header.Set("Content-Type", contentType)

	return c.submit(req)
}

func (c *Client) Analyze(ctx context.Context, analyzerID string, request *analyzer.AnalyzeRequest, options *analyzer.AnalyzeOptions) (*analyzer.Operation, error) {
	if options == nil {
		options = new(analyzer.AnalyzeOptions)
	}

	if request == nil {
		request = new(analyzer.AnalyzeRequest)
	}

	body, _ := json.Marshal(request)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("analyzers/"+url.PathEscape(analyzerID)+":analyze", analyzeQuery(options)), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return c.submit(req)
}

func (c *Client) Result(ctx context.Context, operationID string) (*analyzer.Operation, error) {
	if operationID == "" {
		return nil, errors.New("missing operation id")
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("analyzerResults/"+url.PathEscape(operationID), nil), nil)

	var operation analyzer.Operation

	if _, err := c.do(req, &operation); err != nil {
		return nil, err
	}

	return &operation, nil
}

func (c *Client) Analyzers(ctx context.Context) ([]analyzer.Analyzer, error) {
	var result []analyzer.Analyzer

	next := c.endpoint("analyzers", nil)

	for next != "" {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)

		var page AnalyzerPage

		if _, err := c.do(req, &page); err != nil {
			return nil, err
		}

		result = append(result, page.Value...)

		next = page.NextLink
	}

	return result, nil
}

func (c *Client) CreateAnalyzer(ctx context.Context, analyzerID string, definition analyzer.Analyzer, replace bool) (*analyzer.AnalyzerOperation, error) {
	query := url.Values{}

	if replace {
		query.Set("allowReplace", "true")
	}

	body, _ := json.Marshal(definition)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint("analyzers/"+url.PathEscape(analyzerID), query), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var result analyzer.Analyzer

	resp, err := c.do(req, &result)

	if err != nil {
		return nil, err
	}

	operation := &analyzer.AnalyzerOperation{
		ID:    operationID(resp.Header.Get("Operation-Location")),
		State: analyzer.StateRunning,

		Result: &result,
	}

	if result.Status == analyzer.AnalyzerStatusReady {
		operation.State = analyzer.StateSucceeded
	}

	return operation, nil
}

func (c *Client) AnalyzerOperation(ctx context.Context, analyzerID, operationID string) (*analyzer.AnalyzerOperation, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("analyzers/"+url.PathEscape(analyzerID)+"/operations/"+url.PathEscape(operationID), nil), nil)

	var operation analyzer.AnalyzerOperation

	if _, err := c.do(req, &operation); err != nil {
		return nil, err
	}

	return &operation, nil
}

func (c *Client) submit(req *http.Request) (*analyzer.Operation, error) {
	var operation analyzer.Operation

	resp, err := c.do(req, &operation)

	if err != nil {
		return nil, err
	}

	if operation.ID == "" {
		operation.ID = operationID(resp.Header.Get("Operation-Location"))
	}

	if operation.ID == "" {
		return nil, errors.New("missing operation id")
	}

	if operation.State == "" {
		operation.State = analyzer.StateNotStarted
	}

	return &operation, nil
}

func (c *Client) do(req *http.Request, result any) (*http.Response, error) {
	if c.token != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, convertError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	return resp, nil
}

func (c *Client) endpoint(resource string, query url.Values) string {
	u, _ := url.Parse(c.url + "/contentunderstanding/" + resource)

	if query == nil {
		query = url.Values{}
	}

	query.Set("api-version", c.version)

	u.RawQuery = query.Encode()

	return u.String()
}

func analyzeQuery(options *analyzer.AnalyzeOptions) url.Values {
	query := url.Values{}

	if options.StringEncoding != "" {
		query.Set("stringEncoding", string(options.StringEncoding))
	}

	if options.ProcessingLocation != "" {
		query.Set("processingLocation", string(options.ProcessingLocation))
	}

	return query
}

// operationID takes the last path element of an Operation-Location header.
func operationID(location string) string {
	if location == "" {
		return ""
	}

	u, err := url.Parse(location)

	if err != nil {
		return ""
	}

	id := path.Base(u.Path)

	if id == "." || id == "/" {
		return ""
	}

	return id
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	result := &analyzer.ResponseError{
		StatusCode: resp.StatusCode,
	}

	var body ErrorResponse

	if err := json.Unmarshal(data, &body); err == nil && body.Error != nil {
		result.Err = body.Error
		return result
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		result.Err = &analyzer.Error{
			Message: text,
		}
	}

	return result
}
