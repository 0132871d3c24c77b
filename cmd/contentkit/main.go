package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/contentkit/config"
	"github.com/adrianliechti/contentkit/pkg/otel"
	"github.com/adrianliechti/contentkit/server"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

var version = "dev"

type app struct {
	config *string
}

func (a *app) load(ctx context.Context) (*config.Config, error) {
	return config.Parse(ctx, *a.config)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootFlags := ff.NewFlagSet("contentkit")

	a := &app{
		config: rootFlags.StringLong("config", config.DefaultFile, "config file"),
	}

	root := &ff.Command{
		Name:      "contentkit",
		Usage:     "contentkit <command> [flags]",
		ShortHelp: "analyze receipts and manuals with Azure Content Understanding",
		Flags:     rootFlags,

		Subcommands: []*ff.Command{
			a.receiptsCommand(rootFlags),
			a.manualsCommand(rootFlags),
			a.analyzersCommand(rootFlags),
			a.serveCommand(rootFlags),
			versionCommand(rootFlags),
		},

		Exec: func(ctx context.Context, args []string) error {
			return ff.ErrHelp
		},
	}

	if err := root.Parse(args, ff.WithEnvVarPrefix("CONTENTKIT")); err != nil {
		return exitCode(root, err)
	}

	shutdown, err := otel.Setup(ctx, "contentkit", version)

	if err != nil {
		return exitCode(root, err)
	}

	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	if err := root.Run(ctx); err != nil {
		return exitCode(root, err)
	}

	return 0
}

func exitCode(root *ff.Command, err error) int {
	if errors.Is(err, ff.ErrHelp) || errors.Is(err, ff.ErrNoExec) {
		cmd := root.GetSelected()

		if cmd == nil {
			cmd = root
		}

		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Command(cmd))
		return 0
	}

	slog.Error("command failed", "error", err)
	return 1
}

func (a *app) serveCommand(parent *ff.FlagSet) *ff.Command {
	flags := ff.NewFlagSet("serve").SetParent(parent)

	address := flags.StringLong("address", "", "listen address (overrides config)")

	return &ff.Command{
		Name:      "serve",
		Usage:     "contentkit serve [flags]",
		ShortHelp: "serve the HTTP API and MCP endpoint",
		Flags:     flags,

		Exec: func(ctx context.Context, args []string) error {
			cfg, err := a.load(ctx)

			if err != nil {
				return err
			}

			defer cfg.Close()

			if *address != "" {
				cfg.Address = *address
			}

			s, err := server.New(cfg)

			if err != nil {
				return err
			}

			return s.ListenAndServe(ctx)
		},
	}
}

func versionCommand(parent *ff.FlagSet) *ff.Command {
	return &ff.Command{
		Name:      "version",
		ShortHelp: "print the version",
		Flags:     ff.NewFlagSet("version").SetParent(parent),

		Exec: func(ctx context.Context, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}
