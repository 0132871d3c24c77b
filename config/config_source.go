package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/source/dir"
	"github.com/adrianliechti/contentkit/pkg/source/s3"
)

type sourceConfig struct {
	Type string `yaml:"type"`

	Path       string   `yaml:"path"`
	Extensions []string `yaml:"extensions"`

	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

func (c *Config) registerSource(ctx context.Context, f *File) error {
	cfg := f.Source

	if cfg == nil {
		return nil
	}

	switch strings.ToLower(cfg.Type) {
	case "dir", "directory":
		var options []dir.Option

		if len(cfg.Extensions) > 0 {
			options = append(options, dir.WithExtensions(cfg.Extensions...))
		}

		p, err := dir.New(cfg.Path, options...)

		if err != nil {
			return err
		}

		c.Source = p

	case "s3":
		var options []s3.Option

		if cfg.Prefix != "" {
			options = append(options, s3.WithPrefix(cfg.Prefix))
		}

		if cfg.Region != "" {
			options = append(options, s3.WithRegion(cfg.Region))
		}

		if cfg.Endpoint != "" {
			options = append(options, s3.WithEndpoint(cfg.Endpoint))
		}

		if cfg.AccessKey != "" {
			options = append(options, s3.WithCredentials(cfg.AccessKey, cfg.SecretKey))
		}

		p, err := s3.New(ctx, cfg.Bucket, options...)

		if err != nil {
			return err
		}

		c.Source = p

	default:
		return errors.New("invalid source type: " + cfg.Type)
	}

	return nil
}
