package packager

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/interfaces"
	"github.com/m-mizutani/relpub/pkg/utils/logging"
)

// Runner executes the packaging command through sh -c
type Runner struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
}

var _ interfaces.CommandRunner = (*Runner)(nil)

// Option is a functional option for Runner
type Option func(*Runner)

// WithDir sets the working directory of the command
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithOutput redirects the command output
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner streaming command output to the process stdout and stderr
func New(opts ...Option) *Runner {
	r := &Runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until command exits. A non-zero exit is reported through the exit
// code with a nil error; err is set only when the command could not be run.
func (r *Runner) Run(ctx context.Context, command string) (int, error) {
	logger := logging.From(ctx)
	logger.Info("Running package command", "command", command, "dir", r.dir)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn("Package command exited with non-zero status",
				"command", command,
				"exit_code", exitErr.ExitCode(),
			)
			return exitErr.ExitCode(), nil
		}
		return -1, goerr.Wrap(err, "failed to run package command", goerr.V("command", command))
	}

	logger.Debug("Package command finished", "command", command)
	return 0, nil
}
