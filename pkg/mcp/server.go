package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/adrianliechti/contentkit/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	impl *mcp.Implementation
	opts *mcp.ServerOptions

	tools []tool.Provider
}

func New(name, version string, tools ...tool.Provider) (*Server, error) {
	s := &Server{
		impl: &mcp.Implementation{
			Name:    name,
			Version: version,
		},

		opts: &mcp.ServerOptions{
			KeepAlive: time.Second * 30,
		},

		tools: tools,
	}

	return s, nil
}

// Server builds an MCP server exposing the tools of all providers.
func (s *Server) Server(ctx context.Context) (*mcp.Server, error) {
	server := mcp.NewServer(s.impl, s.opts)

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			return nil, err
		}

		for _, t := range tools {
			data, _ := json.Marshal(tool.NormalizeSchema(t.Parameters))

			schema := new(jsonschema.Schema)

			if err := schema.UnmarshalJSON(data); err != nil {
				return nil, err
			}

			server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, handler(p, t.Name))
		}
	}

	return server, nil
}

// Handler serves the tools over stateless streamable HTTP.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	server, err := s.Server(ctx)

	if err != nil {
		return nil, err
	}

	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	}), nil
}

func handler(p tool.Provider, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any

		if r := req.Params.Arguments; len(r) > 0 {
			if err := json.Unmarshal(r, &args); err != nil {
				return errorResult(err), nil
			}
		}

		result, err := p.Execute(ctx, name, args)

		if err != nil {
			return errorResult(err), nil
		}

		switch v := result.(type) {
		case *mcp.CallToolResult:
			return v, nil

		case string:
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: v,
					},
				},
			}, nil

		default:
			data, _ := json.Marshal(v)

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: string(data),
					},
				},
			}, nil
		}
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,

		Content: []mcp.Content{
			&mcp.TextContent{
				Text: err.Error(),
			},
		},
	}
}
