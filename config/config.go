package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/auth"
	"github.com/adrianliechti/contentkit/pkg/auth/policy"
	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/manual"
	"github.com/adrianliechti/contentkit/pkg/mcp"
	"github.com/adrianliechti/contentkit/pkg/receipt"
	"github.com/adrianliechti/contentkit/pkg/segmenter"
	"github.com/adrianliechti/contentkit/pkg/source"
	"github.com/adrianliechti/contentkit/pkg/tool"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "contentkit.yaml"

type Config struct {
	Address string

	Authorizers []auth.Provider

	// Policy is nil unless a rego policy file is configured.
	Policy *policy.Policy

	Analyzer analyzer.Provider
	Manager  analyzer.Manager

	Segmenter segmenter.Provider
	Index     index.Provider

	// Source is nil unless a source section is configured.
	Source source.Provider

	Receipts *receipt.Reader
	Manuals  *manual.Indexer

	Tools []tool.Provider
	MCP   *mcp.Server

	closers    []io.Closer
	indexSetup func(context.Context) error
}

func Parse(ctx context.Context, path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	return Load(ctx, file)
}

func Load(ctx context.Context, file *File) (*Config, error) {
	c := &Config{
		Address: ":8080",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerAuthorizer(ctx, file); err != nil {
		return nil, err
	}

	if file.Policy != "" {
		p, err := policy.Load(ctx, file.Policy)

		if err != nil {
			return nil, err
		}

		c.Policy = p
	}

	if err := c.registerAnalyzer(file); err != nil {
		return nil, err
	}

	if err := c.registerIndex(file); err != nil {
		return nil, err
	}

	if err := c.registerSource(ctx, file); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	if err := c.registerServices(file); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	if err := c.registerTools(file); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	return c, nil
}

func (c *Config) Close() error {
	var errs []error

	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}

	c.closers = nil

	return errors.Join(errs...)
}

// File is the yaml document. Values are expanded from the environment before decoding.
type File struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`
	Policy      string             `yaml:"policy"`

	Analyzer analyzerConfig `yaml:"analyzer"`

	Receipts receiptsConfig `yaml:"receipts"`
	Manuals  manualsConfig  `yaml:"manuals"`

	Index  indexConfig   `yaml:"index"`
	Source *sourceConfig `yaml:"source"`

	MCP mcpConfig `yaml:"mcp"`
}

func parseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return ParseYAML(data)
}

func ParseYAML(data []byte) (*File, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var config File

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
