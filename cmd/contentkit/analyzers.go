package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/adrianliechti/contentkit/pkg/analyzer"

	"github.com/peterbourgon/ff/v4"
)

func (a *app) analyzersCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("analyzers").SetParent(parent)

	return &ff.Command{
		Name:      "analyzers",
		Usage:     "contentkit analyzers <list|create> [flags]",
		ShortHelp: "manage analyzer definitions",
		Flags:     flags,

		Subcommands: []*ff.Command{
			a.analyzersListCommand(flags),
			a.analyzersCreateCommand(flags),
		},
	}
}

func (a *app) analyzersListCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("list").SetParent(parent)

	return &ff.Command{
		Name:      "list",
		ShortHelp: "list prebuilt and custom analyzers",
		Flags:     flags,

		Exec: func(ctx context.Context, args []string) error {
			cfg, err := a.load(ctx)

			if err != nil {
				return err
			}

			defer cfg.Close()

			analyzers, err := cfg.Manager.Analyzers(ctx)

			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tBASE\tDESCRIPTION")

			for _, a := range analyzers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.AnalyzerID, a.Status, a.BaseAnalyzerID, a.Description)
			}

			return w.Flush()
		},
	}
}

func (a *app) analyzersCreateCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("create").SetParent(parent)

	file := flags.StringLong("file", "", "analyzer definition (json)")
	replace := flags.BoolLong("replace", "replace an existing analyzer")

	return &ff.Command{
		Name:      "create",
		Usage:     "contentkit analyzers create --file <definition.json> [--replace] <id>",
		ShortHelp: "create a custom analyzer and wait until it is ready",
		Flags:     flags,

		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one analyzer id")
			}

			if *file == "" {
				return errors.New("missing --file")
			}

			data, err := os.ReadFile(*file)

			if err != nil {
				return err
			}

			var definition analyzer.Analyzer

			if err := json.Unmarshal(data, &definition); err != nil {
				return err
			}

			cfg, err := a.load(ctx)

			if err != nil {
				return err
			}

			defer cfg.Close()

			op, err := analyzer.CreateAnalyzer(ctx, cfg.Manager, args[0], definition, *replace, 0)

			if err != nil {
				return err
			}

			if op.State != analyzer.StateSucceeded {
				if op.Error != nil {
					return op.Error
				}

				return fmt.Errorf("analyzer creation %s", op.State)
			}

			status := analyzer.AnalyzerStatusReady

			if op.Result != nil && op.Result.Status != "" {
				status = op.Result.Status
			}

			fmt.Printf("analyzer %s is %s\n", args[0], status)

			return nil
		},
	}
}
