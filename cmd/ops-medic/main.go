// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Command ops-medic runs the GitHub App that summarizes failed workflow
// runs on pull requests.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/aaryanshroff/ops-medic/cmd/ops-medic/commands"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "ops-medic",
		Usage:   "Summarize failed GitHub Actions runs on pull requests",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the webhook server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "token",
				Usage: "Mint an installation access token and print it",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "installation-id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "GitHub App installation ID",
					},
					&cli.BoolFlag{
						Name:  "jwt",
						Usage: "Print the app JWT instead of exchanging it",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunToken(ctx, cmd.Int64("installation-id"), cmd.Bool("jwt"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
