package config

import (
	"errors"
	"strings"
	"time"

	"github.com/adrianliechti/contentkit/pkg/analyzer/azure"
	"github.com/adrianliechti/contentkit/pkg/limiter"
	"github.com/adrianliechti/contentkit/pkg/manual"
	"github.com/adrianliechti/contentkit/pkg/otel"
	"github.com/adrianliechti/contentkit/pkg/receipt"
	"github.com/adrianliechti/contentkit/pkg/segmenter/heading"
)

type analyzerConfig struct {
	Type string `yaml:"type"`

	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Version string `yaml:"version"`

	Limit *int `yaml:"limit"`
}

type receiptsConfig struct {
	Analyzer string        `yaml:"analyzer"`
	Interval time.Duration `yaml:"interval"`
}

type manualsConfig struct {
	Analyzer string        `yaml:"analyzer"`
	Interval time.Duration `yaml:"interval"`

	Concurrency int `yaml:"concurrency"`
}

func (c *Config) registerAnalyzer(f *File) error {
	cfg := f.Analyzer

	switch strings.ToLower(cfg.Type) {
	case "", "azure":
	default:
		return errors.New("invalid analyzer type: " + cfg.Type)
	}

	if cfg.URL == "" {
		return errors.New("analyzer url is required")
	}

	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	if cfg.Version != "" {
		options = append(options, azure.WithAPIVersion(cfg.Version))
	}

	client, err := azure.New(cfg.URL, options...)

	if err != nil {
		return err
	}

	c.Manager = client

	var p = otel.NewAnalyzer("azure", client)

	if cfg.Limit != nil {
		c.Analyzer = limiter.NewAnalyzer(createLimiter(cfg.Limit), p)
	} else {
		c.Analyzer = p
	}

	return nil
}

func (c *Config) registerServices(f *File) error {
	s, err := heading.New()

	if err != nil {
		return err
	}

	c.Segmenter = otel.NewSegmenter("heading", s)

	var receiptOptions []receipt.Option

	if f.Receipts.Analyzer != "" {
		receiptOptions = append(receiptOptions, receipt.WithAnalyzer(f.Receipts.Analyzer))
	}

	if f.Receipts.Interval > 0 {
		receiptOptions = append(receiptOptions, receipt.WithInterval(f.Receipts.Interval))
	}

	c.Receipts = receipt.NewReader(c.Analyzer, receiptOptions...)

	var manualOptions []manual.Option

	if f.Manuals.Analyzer != "" {
		manualOptions = append(manualOptions, manual.WithAnalyzer(f.Manuals.Analyzer))
	}

	if f.Manuals.Interval > 0 {
		manualOptions = append(manualOptions, manual.WithInterval(f.Manuals.Interval))
	}

	if f.Manuals.Concurrency > 0 {
		manualOptions = append(manualOptions, manual.WithConcurrency(f.Manuals.Concurrency))
	}

	indexer, err := manual.New(c.Analyzer, c.Segmenter, c.Index, manualOptions...)

	if err != nil {
		return err
	}

	c.Manuals = indexer

	return nil
}
