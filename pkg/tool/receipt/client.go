package receipt

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/receipt"
	"github.com/adrianliechti/contentkit/pkg/tool"
)

var _ tool.Provider = (*Client)(nil)

const ToolName = "read_receipt"

type Client struct {
	reader *receipt.Reader
}

type Option func(*Client)

func New(reader *receipt.Reader, options ...Option) (*Client, error) {
	c := &Client{
		reader: reader,
	}

	for _, option := range options {
		option(c)
	}

	if c.reader == nil {
		return nil, errors.New("missing receipt reader")
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{
		{
			Name:        ToolName,
			Description: "Reads and analyzes a receipt from an image URL. Returns the receipt details such as total, date and items.",

			Parameters: map[string]any{
				"type": "object",

				"properties": map[string]any{
					"imageUrl": map[string]any{
						"type":        "string",
						"description": "URL of the receipt image to analyze, starting with http:// or https://",
					},
				},

				"required": []string{"imageUrl"},
			},
		},
	}, nil
}

func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	if name != ToolName {
		return nil, tool.ErrInvalidTool
	}

	imageURL, _ := parameters["imageUrl"].(string)

	if strings.TrimSpace(imageURL) == "" {
		return nil, errors.New("missing imageUrl parameter")
	}

	return c.reader.ReadURL(ctx, imageURL)
}
