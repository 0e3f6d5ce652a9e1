// AngelaMos | 2026
// keys.go

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/carterperez-dev/journal-backend/internal/auth"
)

func keygenCmd() *cli.Command {
	var privatePath, publicPath string
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate an ES256 key pair for signing access tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "private",
				Usage:       "Where to write the private key PEM",
				Value:       "keys/private.pem",
				Destination: &privatePath,
			},
			&cli.StringFlag{
				Name:        "public",
				Usage:       "Where to write the public key PEM",
				Value:       "keys/public.pem",
				Destination: &publicPath,
			},
		},
		Action: func(ctx *cli.Context) error {
			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return err
			}
			_, err := fmt.Fprintf(ctx.App.Writer, "wrote %s and %s\n", privatePath, publicPath)
			return err
		},
	}
}
