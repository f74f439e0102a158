package interfaces

import "context"

// VersionStore reads and bumps the version held in the project manifest
type VersionStore interface {
	// Load reads the current version
	Load(ctx context.Context) (string, error)

	// BumpPatch increments the patch segment, appends suffix and persists the result
	BumpPatch(ctx context.Context, suffix string) (string, error)
}

// CommandRunner executes the packaging command
type CommandRunner interface {
	// Run blocks until command exits and returns its exit code
	Run(ctx context.Context, command string) (int, error)
}
