// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/courses/cmd/app/commands"
	"github.com/allisson/courses/internal/app"
	"github.com/allisson/courses/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Course platform API with role and permission based access control",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "seed",
				Usage: "Load the demo users and courses",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer func() {
						if err := container.Shutdown(ctx); err != nil {
							logger.Error("failed to shutdown container", slog.Any("error", err))
						}
					}()

					txManager, err := container.TxManager()
					if err != nil {
						return err
					}

					userRepo, err := container.UserRepository()
					if err != nil {
						return err
					}

					courseRepo, err := container.CourseRepository()
					if err != nil {
						return err
					}

					return commands.RunSeed(ctx, txManager, userRepo, courseRepo, container.PasswordService(), logger)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
