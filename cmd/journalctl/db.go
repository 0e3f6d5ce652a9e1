// AngelaMos | 2026
// db.go

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/carterperez-dev/journal-backend/internal/config"
	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/migrations"
	"github.com/carterperez-dev/journal-backend/internal/user"
)

func configFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to the YAML config file",
		Value:       "config.yaml",
		EnvVars:     []string{"JOURNAL_CONFIG"},
		Destination: dst,
	}
}

// withDatabase loads configuration and opens the database for the
// duration of fn.
func withDatabase(
	ctx *cli.Context,
	configPath string,
	fn func(db *core.Database) error,
) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx.Context, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process is exiting

	return fn(db)
}

func migrateCmd() *cli.Command {
	var configPath string
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Flags: []cli.Flag{configFlag(&configPath)},
		Action: func(ctx *cli.Context) error {
			return withDatabase(ctx, configPath, func(db *core.Database) error {
				return migrations.Up(ctx.Context, db.DB.DB)
			})
		},
	}
}

func statusCmd() *cli.Command {
	var configPath string
	return &cli.Command{
		Name:  "status",
		Usage: "Show which migrations have been applied",
		Flags: []cli.Flag{configFlag(&configPath)},
		Action: func(ctx *cli.Context) error {
			return withDatabase(ctx, configPath, func(db *core.Database) error {
				return migrations.Status(ctx.Context, db.DB.DB)
			})
		},
	}
}

func createAdminCmd() *cli.Command {
	var configPath string
	var username string
	return &cli.Command{
		Name:  "create-admin",
		Usage: "Create an administrator account (password is read from stdin)",
		Flags: []cli.Flag{
			configFlag(&configPath),
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Login name of the new administrator",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			password, err := readPassword(ctx.App.Reader)
			if err != nil {
				return err
			}

			return withDatabase(ctx, configPath, func(db *core.Database) error {
				svc := user.NewService(user.NewRepository(db.DB))
				created, err := svc.Bootstrap(ctx.Context, username, password)
				if errors.Is(err, core.ErrDuplicateKey) {
					return fmt.Errorf("user %q already exists", username)
				}
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(ctx.App.Writer, "created admin %s (%s)\n", created.Email, created.ID)
				return err
			})
		},
	}
}

func readPassword(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("missing password from stdin")
	}

	password := strings.TrimSpace(sc.Text())
	if password == "" {
		return "", errors.New("missing password from stdin")
	}
	return password, nil
}
