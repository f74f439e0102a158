package interfaces

import (
	"context"

	"github.com/m-mizutani/relpub/pkg/domain/model"
)

// PublishUseCase defines the bump, build and publish workflow
type PublishUseCase interface {
	// Run executes the workflow for one invocation
	Run(ctx context.Context, opts model.RunOptions) (*model.PublishResult, error)
}

// Prompter asks the operator for input
type Prompter interface {
	// Confirm asks a yes/no question. Only an explicit negative answer returns false.
	Confirm(ctx context.Context, question string) (bool, error)

	// ReadText reads free text terminated by an empty line or end of input
	ReadText(ctx context.Context, question string) (string, error)
}

// Reporter prints user facing progress lines
type Reporter interface {
	Info(format string, args ...any)
	OK(format string, args ...any)
	Done(format string, args ...any)
	Warn(format string, args ...any)
	Fail(status int, format string, args ...any)
}
