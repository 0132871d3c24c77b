package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/adrianliechti/contentkit/pkg/index"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var _ index.Provider = &Client{}

const (
	DefaultAPIVersion = "2024-07-01"
	DefaultLimit      = 10

	SuggesterName = "sg"
)

// Client talks to an Azure AI Search index holding manual chunks.
type Client struct {
	client *http.Client

	url   string
	token string
	name  string

	version string
}

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.version = version
		}
	}
}

func New(url, name string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	if name == "" {
		return nil, errors.New("invalid index name")
	}

	c := &Client{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},

		url:  strings.TrimRight(url, "/"),
		name: name,

		version: DefaultAPIVersion,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Definition returns the index schema with the "sg" suggester.
func Definition(name string) Index {
	return Index{
		Name: name,

		Fields: []Field{
			{Name: "Id", Type: "Edm.String", Key: true, Filterable: true, Sortable: true},
			{Name: "FileName", Type: "Edm.String", Searchable: true, Filterable: true, Sortable: true},
			{Name: "SectionTitle", Type: "Edm.String", Searchable: true, Filterable: true, Sortable: true},
			{Name: "ChunkIndex", Type: "Edm.Int32", Filterable: true, Sortable: true},
			{Name: "Content", Type: "Edm.String", Searchable: true, Analyzer: "en.microsoft"},
			{Name: "IndexedAt", Type: "Edm.DateTimeOffset", Filterable: true, Sortable: true},
		},

		Suggesters: []Suggester{
			{
				Name: SuggesterName,

				SearchMode:   "analyzingInfixMatching",
				SourceFields: []string{"FileName", "SectionTitle", "Content"},
			},
		},
	}
}

// Setup creates or updates the index schema.
func (c *Client) Setup(ctx context.Context) error {
	body, _ := json.Marshal(Definition(c.name))

	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint("indexes/"+url.PathEscape(c.name)), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	return c.do(req, nil)
}

func (c *Client) List(ctx context.Context, options *index.ListOptions) (*index.Page[index.Document], error) {
	if options == nil {
		options = new(index.ListOptions)
	}

	limit := DefaultLimit

	if options.Limit != nil && *options.Limit > 0 {
		limit = *options.Limit
	}

	request := SearchRequest{
		Search: "*",

		Top:     limit,
		OrderBy: "Id asc",
	}

	if options.Cursor != "" {
		request.Filter = "Id gt " + quote(options.Cursor)
	}

	data, err := c.search(ctx, request)

	if err != nil {
		return nil, err
	}

	page := &index.Page[index.Document]{}

	for _, r := range data.Value {
		page.Items = append(page.Items, toDocument(r.Document))
	}

	if len(page.Items) == limit {
		page.Cursor = page.Items[len(page.Items)-1].ID
	}

	return page, nil
}

func (c *Client) Index(ctx context.Context, documents ...index.Document) error {
	batch := IndexBatch{}

	for _, d := range documents {
		if d.ID == "" {
			return fmt.Errorf("document %q: missing id", d.SectionTitle)
		}

		if d.IndexedAt.IsZero() {
			d.IndexedAt = time.Now().UTC()
		}

		doc := fromDocument(d)
		doc.Action = ActionUpload

		batch.Value = append(batch.Value, doc)
	}

	return c.batch(ctx, batch)
}

func (c *Client) Delete(ctx context.Context, ids ...string) error {
	batch := IndexBatch{}

	for _, id := range ids {
		batch.Value = append(batch.Value, Document{
			Action: ActionDelete,
			ID:     id,
		})
	}

	return c.batch(ctx, batch)
}

func (c *Client) Query(ctx context.Context, query string, options *index.QueryOptions) ([]index.Result, error) {
	if options == nil {
		options = new(index.QueryOptions)
	}

	limit := DefaultLimit

	if options.Limit != nil && *options.Limit > 0 {
		limit = *options.Limit
	}

	filter, err := filterExpression(options.Filters)

	if err != nil {
		return nil, err
	}

	request := SearchRequest{
		Search: query,

		Count:  true,
		Top:    limit,
		Filter: filter,
		Select: "Id,FileName,SectionTitle,ChunkIndex,Content,IndexedAt",

		Highlight:        "Content",
		HighlightPreTag:  "<mark>",
		HighlightPostTag: "</mark>",
	}

	data, err := c.search(ctx, request)

	if err != nil {
		return nil, err
	}

	results := make([]index.Result, 0, len(data.Value))

	for _, r := range data.Value {
		results = append(results, index.Result{
			Document: toDocument(r.Document),

			Score:      r.Score,
			Highlights: r.Highlights["Content"],
		})
	}

	return results, nil
}

func (c *Client) search(ctx context.Context, request SearchRequest) (*SearchResponse, error) {
	body, _ := json.Marshal(request)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("indexes/"+url.PathEscape(c.name)+"/docs/search"), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var data SearchResponse

	if err := c.do(req, &data); err != nil {
		return nil, err
	}

	return &data, nil
}

func (c *Client) batch(ctx context.Context, batch IndexBatch) error {
	if len(batch.Value) == 0 {
		return nil
	}

	body, _ := json.Marshal(batch)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("indexes/"+url.PathEscape(c.name)+"/docs/index"), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var result IndexBatchResult

	if err := c.do(req, &result); err != nil {
		return err
	}

	var errs []error

	for _, r := range result.Value {
		if !r.Status {
			errs = append(errs, fmt.Errorf("document %s: %d %s", r.Key, r.StatusCode, r.ErrorMessage))
		}
	}

	return errors.Join(errs...)
}

func (c *Client) do(req *http.Request, result any) error {
	if c.token != "" {
		req.Header.Set("api-key", c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	// 207 reports per document failures in the body
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return convertError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	return nil
}

func (c *Client) endpoint(resource string) string {
	return c.url + "/" + resource + "?api-version=" + url.QueryEscape(c.version)
}

func filterExpression(filters map[string]string) (string, error) {
	fields := map[string]string{
		"id":           "Id",
		"fileName":     "FileName",
		"sectionTitle": "SectionTitle",
	}

	var clauses []string

	for k, v := range filters {
		name, ok := fields[k]

		if !ok {
			return "", fmt.Errorf("unsupported filter %q", k)
		}

		clauses = append(clauses, name+" eq "+quote(v))
	}

	slices.Sort(clauses)

	return strings.Join(clauses, " and "), nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func fromDocument(d index.Document) Document {
	chunk := d.ChunkIndex
	indexed := d.IndexedAt

	return Document{
		ID: d.ID,

		FileName:     d.FileName,
		SectionTitle: d.SectionTitle,
		ChunkIndex:   &chunk,

		Content: d.Content,

		IndexedAt: &indexed,
	}
}

func toDocument(d Document) index.Document {
	result := index.Document{
		ID: d.ID,

		FileName:     d.FileName,
		SectionTitle: d.SectionTitle,

		Content: d.Content,
	}

	if d.ChunkIndex != nil {
		result.ChunkIndex = *d.ChunkIndex
	}

	if d.IndexedAt != nil {
		result.IndexedAt = *d.IndexedAt
	}

	return result
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("%s: %s", resp.Status, body.Error.Message)
	}

	if len(data) > 0 {
		return errors.New(strings.TrimSpace(string(data)))
	}

	return errors.New(resp.Status)
}
