package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/adrianliechti/contentkit/config"
	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/client"
	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/source/dir"

	"github.com/peterbourgon/ff/v4"
)

func (a *app) manualsCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("manuals").SetParent(parent)

	return &ff.Command{
		Name:      "manuals",
		Usage:     "contentkit manuals <index|search> [flags]",
		ShortHelp: "index and search product manuals",
		Flags:     flags,

		Subcommands: []*ff.Command{
			a.manualsIndexCommand(flags),
			a.manualsSearchCommand(flags),
		},
	}
}

func (a *app) manualsIndexCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("index").SetParent(parent)

	query := flags.StringLong("query", "", "search the index once indexing is done")

	return &ff.Command{
		Name:      "index",
		Usage:     "contentkit manuals index [flags] [file|dir ...]",
		ShortHelp: "analyze manuals and index their sections",
		Flags:     flags,

		Exec: func(ctx context.Context, args []string) error {
			cfg, err := a.load(ctx)

			if err != nil {
				return err
			}

			defer cfg.Close()

			files, err := collectFiles(ctx, cfg, args)

			if err != nil {
				return err
			}

			if err := cfg.SetupIndex(ctx); err != nil {
				return err
			}

			reports, err := cfg.Manuals.Index(ctx, files...)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tSTATE\tCHUNKS\tERROR")

			for _, r := range reports {
				var msg string

				if r.Err != nil {
					msg = r.Err.Error()
				}

				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.File, r.State, r.Chunks, msg)
			}

			w.Flush()

			if err != nil {
				return err
			}

			if *query == "" {
				return nil
			}

			return search(ctx, cfg, *query, nil)
		},
	}
}

func (a *app) manualsSearchCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("search").SetParent(parent)

	limit := flags.IntLong("limit", 5, "maximum number of results")
	file := flags.StringLong("file", "", "only search sections of this file")

	serverURL := flags.StringLong("server", "", "query a running contentkit server instead of the local index")
	token := flags.StringLong("token", "", "bearer token for --server")

	return &ff.Command{
		Name:      "search",
		Usage:     "contentkit manuals search [flags] <query>",
		ShortHelp: "search indexed manual sections",
		Flags:     flags,

		Exec: func(ctx context.Context, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))

			if query == "" {
				return errors.New("missing query")
			}

			if *serverURL != "" {
				return searchRemote(ctx, *serverURL, *token, client.SearchRequest{
					Query: query,

					FileName: *file,
					Limit:    limit,
				})
			}

			cfg, err := a.load(ctx)

			if err != nil {
				return err
			}

			defer cfg.Close()

			options := &index.QueryOptions{
				Limit: limit,
			}

			if *file != "" {
				options.Filters = map[string]string{
					"fileName": *file,
				}
			}

			return search(ctx, cfg, query, options)
		},
	}
}

func searchRemote(ctx context.Context, url, token string, request client.SearchRequest) error {
	var options []client.RequestOption

	if token != "" {
		options = append(options, client.WithToken(token))
	}

	c := client.New(url, options...)

	results, err := c.Searches.New(ctx, request)

	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%s / %s (%.2f)\n", r.FileName, r.SectionTitle, r.Score)

		for _, h := range r.Highlights {
			fmt.Printf("  %s\n", h)
		}

		fmt.Println()
	}

	return nil
}

func search(ctx context.Context, cfg *config.Config, query string, options *index.QueryOptions) error {
	results, err := cfg.Index.Query(ctx, query, options)

	if err != nil {
		return err
	}

	if len(results) == 0 {
		slog.Info("no results", "query", query)
		return nil
	}

	for _, r := range results {
		fmt.Printf("%s / %s (%.2f)\n", r.FileName, r.SectionTitle, r.Score)

		for _, h := range r.Highlights {
			fmt.Printf("  %s\n", h)
		}

		fmt.Println()
	}

	return nil
}

func collectFiles(ctx context.Context, cfg *config.Config, args []string) ([]analyzer.File, error) {
	if len(args) == 0 {
		if cfg.Source == nil {
			return nil, errors.New("no input files and no source configured")
		}

		return cfg.Source.Files(ctx)
	}

	var result []analyzer.File

	for _, arg := range args {
		info, err := os.Stat(arg)

		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			p, err := dir.New(arg)

			if err != nil {
				return nil, err
			}

			files, err := p.Files(ctx)

			if err != nil {
				return nil, err
			}

			result = append(result, files...)
			continue
		}

		f, err := readFile(arg)

		if err != nil {
			return nil, err
		}

		result = append(result, *f)
	}

	return result, nil
}
