package model

// Action is the operation requested on the command line
type Action string

const (
	ActionBuildOnly Action = "build-only"
	ActionPublish   Action = "publish"
)

// ParseAction validates an action name. Empty means build-only.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case "", ActionBuildOnly:
		return ActionBuildOnly, true
	case ActionPublish:
		return ActionPublish, true
	}
	return "", false
}

// PublishState is a step of the publish workflow
type PublishState string

const (
	StateIdle          PublishState = "idle"
	StateVersionBumped PublishState = "version_bumped"
	StateBuilt         PublishState = "built"
	StateAborted       PublishState = "aborted"
	StateReleased      PublishState = "released"
	StateAssetAttached PublishState = "asset_attached"
	StateRolledBack    PublishState = "rolled_back"
)

// PublishConfig holds everything the workflow needs that is not a collaborator
type PublishConfig struct {
	Owner          string
	Repo           string
	Target         string // Branch or commitish the release is cut from
	Prerelease     bool
	Product        string // Artifact name prefix
	Extension      string // Artifact file extension without dot
	PackageCommand string
	BranchSuffix   string // Appended to the bumped version, e.g. "-DEV"
	WorkDir        string // Directory the artifact is produced in
	WebURL         string // Base URL of release pages
}

// RunOptions are per-invocation switches
type RunOptions struct {
	Action Action
	NoBump bool
}

// PublishResult describes how far a run got
type PublishResult struct {
	State        PublishState
	Version      string // Version the artifact and release are built from
	NewVersion   string // Bumped version written to the manifest, empty with no bump
	Artifact     string // Artifact path
	Release      *ReleaseHandle
	ReleaseState ReleaseState
	RollbackErr  error // Set when the compensating delete failed
}
