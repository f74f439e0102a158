package cli

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/relpub/pkg/cli/config"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	"github.com/m-mizutani/relpub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	publish := newPublishCommand()

	app := &cli.Command{
		Name:      "relpub",
		Usage:     "Bump, package and publish an extension as a GitHub release",
		Version:   types.Version,
		ArgsUsage: "[build-only|publish]",
		Flags:     append(loggerCfg.Flags(), publish.flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			logger = logger.With("run_id", uuid.NewString())
			slog.SetDefault(logger)
			ctx = logging.With(ctx, logger)
			return ctx, nil
		},
		Action: publish.run,
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
