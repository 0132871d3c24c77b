package config

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/index/azure"
	"github.com/adrianliechti/contentkit/pkg/index/bolt"
	"github.com/adrianliechti/contentkit/pkg/index/memory"
	"github.com/adrianliechti/contentkit/pkg/otel"
)

type indexConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

func (c *Config) registerIndex(f *File) error {
	cfg := f.Index

	if cfg.Type == "" {
		cfg.Type = "memory"
	}

	p, err := createIndex(cfg)

	if err != nil {
		return err
	}

	if closer, ok := p.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}

	if s, ok := p.(setuper); ok {
		c.indexSetup = s.Setup
	}

	c.Index = otel.NewIndex(strings.ToLower(cfg.Type), p)

	return nil
}

type setuper interface {
	Setup(ctx context.Context) error
}

// SetupIndex creates or updates the remote index definition if the configured
// backend has one.
func (c *Config) SetupIndex(ctx context.Context) error {
	if c.indexSetup == nil {
		return nil
	}

	return c.indexSetup(ctx)
}

func createIndex(cfg indexConfig) (index.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "memory":
		return memoryIndex(cfg)

	case "bolt":
		return boltIndex(cfg)

	case "azure":
		return azureIndex(cfg)

	default:
		return nil, errors.New("invalid index type: " + cfg.Type)
	}
}

func memoryIndex(cfg indexConfig) (index.Provider, error) {
	return memory.New()
}

func boltIndex(cfg indexConfig) (index.Provider, error) {
	path := cfg.Path

	if path == "" {
		path = "contentkit.db"
	}

	var options []bolt.Option

	if cfg.Name != "" {
		options = append(options, bolt.WithBucket(cfg.Name))
	}

	return bolt.New(path, options...)
}

func azureIndex(cfg indexConfig) (index.Provider, error) {
	name := cfg.Name

	if name == "" {
		name = "manuals"
	}

	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	return azure.New(cfg.URL, name, options...)
}
