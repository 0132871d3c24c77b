package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/contentkit/pkg/analyzer"
	"github.com/adrianliechti/contentkit/pkg/receipt"
	"github.com/adrianliechti/contentkit/pkg/source"

	"github.com/peterbourgon/ff/v4"
)

func (a *app) receiptsCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("receipts").SetParent(parent)

	xlsx := flags.StringLong("xlsx", "", "also write the results to an excel file")

	return &ff.Command{
		Name:      "receipts",
		Usage:     "contentkit receipts [flags] [file|url ...]",
		ShortHelp: "extract totals, taxes and items from receipts",
		LongHelp:  "Reads the given files or urls, or all files of the configured source when none are given.",
		Flags:     flags,

		Exec: func(ctx context.Context, args []string) error {
			cfg, err := a.load(ctx)

			if err != nil {
				return err
			}

			defer cfg.Close()

			var entries []receipt.Entry

			read := func(name string, r receipt.Receipt, err error) error {
				if err != nil {
					return err
				}

				entries = append(entries, receipt.Entry{File: name, Receipt: r})

				enc := json.NewEncoder(os.Stdout)
				enc.SetEscapeHTML(false)

				return enc.Encode(struct {
					File string `json:"file"`
					receipt.Receipt
				}{name, r})
			}

			if len(args) == 0 {
				if cfg.Source == nil {
					return errors.New("no input files and no source configured")
				}

				files, err := cfg.Source.Files(ctx)

				if err != nil {
					return err
				}

				for _, f := range files {
					r, err := cfg.Receipts.ReadFile(ctx, f)

					if err := read(f.Name, r, err); err != nil {
						return err
					}
				}
			}

			for _, arg := range args {
				if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
					r, err := cfg.Receipts.ReadURL(ctx, arg)

					if err := read(arg, r, err); err != nil {
						return err
					}

					continue
				}

				f, err := readFile(arg)

				if err != nil {
					return err
				}

				r, err := cfg.Receipts.ReadFile(ctx, *f)

				if err := read(f.Name, r, err); err != nil {
					return err
				}
			}

			if *xlsx == "" {
				return nil
			}

			out, err := os.Create(*xlsx)

			if err != nil {
				return err
			}

			defer out.Close()

			if err := receipt.WriteXLSX(out, entries); err != nil {
				return err
			}

			slog.Info("receipts exported", "file", *xlsx, "count", len(entries))

			return nil
		},
	}
}

func readFile(path string) (*analyzer.File, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)

	return &analyzer.File{
		Name: name,

		Content:     data,
		ContentType: source.ContentType(name),
	}, nil
}
