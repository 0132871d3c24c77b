package manual

import (
	"context"
	"errors"

	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

const ToolName = "search_manuals"

type Client struct {
	index index.Provider

	limit int
}

type Option func(*Client)

func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

func New(index index.Provider, options ...Option) (*Client, error) {
	c := &Client{
		index: index,
		limit: 5,
	}

	for _, option := range options {
		option(c)
	}

	if c.index == nil {
		return nil, errors.New("missing index")
	}

	return c, nil
}

type Result struct {
	FileName     string `json:"fileName"`
	SectionTitle string `json:"sectionTitle"`

	Content string `json:"content"`

	Score float32 `json:"score"`
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        ToolName,
			Description: "Search the indexed product manuals and return the best matching sections",

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "keywords to search for, e.g. a product name or a topic",
					},

					"fileName": map[string]any{
						"type":        "string",
						"description": "optional manual file name to restrict the search to",
					},
				},

				"required": []string{"query"},
			},
		},
	}, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if name != ToolName {
		return nil, tool.ErrInvalidTool
	}

	query, ok := parameters["query"].(string)

	if !ok || query == "" {
		return nil, errors.New("missing query parameter")
	}

	limit := c.limit

	options := &index.QueryOptions{
		Limit: &limit,
	}

	if fileName, ok := parameters["fileName"].(string); ok && fileName != "" {
		options.Filters = map[string]string{
			"fileName": fileName,
		}
	}

	data, err := c.index.Query(ctx, query, options)

	if err != nil {
		return nil, err
	}

	results := []Result{}

	for _, r := range data {
		results = append(results, Result{
			FileName:     r.FileName,
			SectionTitle: r.SectionTitle,

			Content: r.Content,

			Score: r.Score,
		})
	}

	return results, nil
}
