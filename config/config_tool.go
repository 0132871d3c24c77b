package config

import (
	"github.com/adrianliechti/contentkit/pkg/mcp"
	"github.com/adrianliechti/contentkit/pkg/otel"
	"github.com/adrianliechti/contentkit/pkg/tool"
	"github.com/adrianliechti/contentkit/pkg/tool/manual"
	"github.com/adrianliechti/contentkit/pkg/tool/receipt"
)

type mcpConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	SearchLimit int `yaml:"search_limit"`
}

func (c *Config) registerTools(f *File) error {
	receipts, err := receipt.New(c.Receipts)

	if err != nil {
		return err
	}

	var searchOptions []manual.Option

	if f.MCP.SearchLimit > 0 {
		searchOptions = append(searchOptions, manual.WithLimit(f.MCP.SearchLimit))
	}

	manuals, err := manual.New(c.Index, searchOptions...)

	if err != nil {
		return err
	}

	c.Tools = []tool.Provider{
		otel.NewTool("receipt", receipts),
		otel.NewTool("manual", manuals),
	}

	name := f.MCP.Name

	if name == "" {
		name = "contentkit"
	}

	version := f.MCP.Version

	if version == "" {
		version = "1.0.0"
	}

	server, err := mcp.New(name, version, c.Tools...)

	if err != nil {
		return err
	}

	c.MCP = server

	return nil
}
