package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/auth"
	"github.com/adrianliechti/contentkit/pkg/auth/header"
	"github.com/adrianliechti/contentkit/pkg/auth/oidc"
	"github.com/adrianliechti/contentkit/pkg/auth/static"
)

type authorizerConfig struct {
	Type string `yaml:"type"`

	Token  string   `yaml:"token"`
	Tokens []string `yaml:"tokens"`

	UserHeader  string `yaml:"user_header"`
	EmailHeader string `yaml:"email_header"`

	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
}

func (c *Config) registerAuthorizer(ctx context.Context, f *File) error {
	for _, a := range f.Authorizers {
		authorizer, err := createAuthorizer(ctx, a)

		if err != nil {
			return err
		}

		c.Authorizers = append(c.Authorizers, authorizer)
	}

	return nil
}

func createAuthorizer(ctx context.Context, cfg authorizerConfig) (auth.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "header":
		return headerAuthorizer(cfg)

	case "static":
		return staticAuthorizer(cfg)

	case "oidc":
		return oidcAuthorizer(ctx, cfg)

	default:
		return nil, errors.New("invalid authorizer type: " + cfg.Type)
	}
}

func headerAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	var options []header.Option

	if cfg.UserHeader != "" {
		options = append(options, header.WithUserHeader(cfg.UserHeader))
	}

	if cfg.EmailHeader != "" {
		options = append(options, header.WithEmailHeader(cfg.EmailHeader))
	}

	return header.New(options...)
}

func staticAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	tokens := cfg.Tokens

	if cfg.Token != "" {
		tokens = append(tokens, cfg.Token)
	}

	return static.New(tokens...)
}

func oidcAuthorizer(ctx context.Context, cfg authorizerConfig) (auth.Provider, error) {
	return oidc.New(ctx, cfg.Issuer, cfg.Audience)
}
