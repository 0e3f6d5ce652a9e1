// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "journalctl",
		Usage: "Operate a journal deployment: schema, admin accounts and signing keys",
		Commands: []*cli.Command{
			migrateCmd(),
			statusCmd(),
			createAdminCmd(),
			keygenCmd(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
