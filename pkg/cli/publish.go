package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/cli/config"
	"github.com/m-mizutani/relpub/pkg/domain/interfaces"
	"github.com/m-mizutani/relpub/pkg/domain/model"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	githubinfra "github.com/m-mizutani/relpub/pkg/infra/github"
	"github.com/m-mizutani/relpub/pkg/infra/manifest"
	"github.com/m-mizutani/relpub/pkg/infra/packager"
	"github.com/m-mizutani/relpub/pkg/infra/prompt"
	"github.com/m-mizutani/relpub/pkg/usecase"
	"github.com/m-mizutani/relpub/pkg/utils/console"
	"github.com/m-mizutani/relpub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type publishCommand struct {
	configPath string
	noBump     bool
	projectCfg config.Project
	githubCfg  config.GitHub

	stdin  io.Reader
	stdout io.Writer
}

func newPublishCommand() *publishCommand {
	return &publishCommand{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

func (x *publishCommand) flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML config file",
			Value:       config.DefaultFile,
			Destination: &x.configPath,
			Sources:     cli.EnvVars("RELPUB_CONFIG"),
		},
		&cli.BoolFlag{
			Name:        "no-bump",
			Aliases:     []string{"n"},
			Usage:       "Build without bumping the patch version",
			Destination: &x.noBump,
		},
	}
	flags = append(flags, x.projectCfg.Flags()...)
	return append(flags, x.githubCfg.Flags()...)
}

func (x *publishCommand) run(ctx context.Context, c *cli.Command) error {
	logger := logging.From(ctx)

	if c.Args().Len() > 1 {
		return goerr.New("too many arguments", goerr.T(types.ErrTagConfig), goerr.V("args", c.Args().Slice()))
	}
	action, ok := model.ParseAction(c.Args().First())
	if !ok {
		return goerr.New("unknown action, expected build-only or publish",
			goerr.T(types.ErrTagConfig),
			goerr.V("action", c.Args().First()))
	}

	file, err := config.LoadFile(x.configPath, c.IsSet("config"))
	if err != nil {
		return err
	}
	x.projectCfg.ApplyFile(file, c.IsSet)
	x.githubCfg.ApplyFile(file, c.IsSet)

	var client interfaces.ReleaseClient
	if action == model.ActionPublish {
		if err := x.githubCfg.Validate(); err != nil {
			return err
		}
		token, err := x.githubCfg.LoadToken()
		if err != nil {
			return err
		}
		client = githubinfra.NewClient(x.githubCfg.Owner, x.githubCfg.Repo, token,
			githubinfra.WithAPIURL(x.githubCfg.APIURL),
			githubinfra.WithUploadURL(x.githubCfg.UploadURL),
		)
	}

	workDir := filepath.Dir(x.projectCfg.Manifest)
	cfg := model.PublishConfig{
		Owner:          x.githubCfg.Owner,
		Repo:           x.githubCfg.Repo,
		Target:         x.githubCfg.Target,
		Prerelease:     x.githubCfg.Prerelease,
		Product:        x.projectCfg.Product,
		Extension:      x.projectCfg.Extension,
		PackageCommand: x.projectCfg.PackageCommand,
		BranchSuffix:   x.projectCfg.BranchSuffix,
		WorkDir:        workDir,
		WebURL:         x.githubCfg.WebURL,
	}

	logger.Debug("Starting workflow",
		"action", action,
		"no_bump", x.noBump,
		"manifest", x.projectCfg.Manifest,
	)

	uc := usecase.NewPublish(
		cfg,
		manifest.New(x.projectCfg.Manifest),
		packager.New(packager.WithDir(workDir), packager.WithOutput(x.stdout, os.Stderr)),
		client,
		prompt.New(x.stdin, x.stdout),
		console.New(x.stdout),
	)

	result, err := uc.Run(ctx, model.RunOptions{
		Action: action,
		NoBump: x.noBump,
	})
	if err != nil {
		return err
	}

	logger.Info("Workflow finished",
		"state", result.State,
		"version", result.Version,
		"new_version", result.NewVersion,
		"artifact", result.Artifact,
	)
	return nil
}
