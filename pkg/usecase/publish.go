package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/interfaces"
	"github.com/m-mizutani/relpub/pkg/domain/model"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	"github.com/m-mizutani/relpub/pkg/utils/logging"
)

const (
	releaseNotesQuestion = "Release body? (Markdown is supported)"
	createReleaseHints   = `
Try:
- Checking if a release already exists with that tag
- Make sure you're connected to the internet
`
)

type publishUseCase struct {
	cfg      model.PublishConfig
	versions interfaces.VersionStore
	runner   interfaces.CommandRunner
	client   interfaces.ReleaseClient
	prompter interfaces.Prompter
	reporter interfaces.Reporter
}

// NewPublish creates the bump, build and publish workflow.
// client may be nil when only build-only runs are expected.
func NewPublish(
	cfg model.PublishConfig,
	versions interfaces.VersionStore,
	runner interfaces.CommandRunner,
	client interfaces.ReleaseClient,
	prompter interfaces.Prompter,
	reporter interfaces.Reporter,
) interfaces.PublishUseCase {
	return &publishUseCase{
		cfg:      cfg,
		versions: versions,
		runner:   runner,
		client:   client,
		prompter: prompter,
		reporter: reporter,
	}
}

// Run bumps the version, builds the artifact and, for publish, creates the
// release and attaches the artifact. A failed upload deletes the new release.
func (uc *publishUseCase) Run(ctx context.Context, opts model.RunOptions) (*model.PublishResult, error) {
	logger := logging.From(ctx)

	result := &model.PublishResult{
		State:        model.StateIdle,
		ReleaseState: model.ReleaseNotCreated,
	}

	version, err := uc.versions.Load(ctx)
	if err != nil {
		return result, goerr.Wrap(err, "failed to load version", goerr.T(types.ErrTagManifest))
	}
	result.Version = version

	if !opts.NoBump {
		next, err := uc.versions.BumpPatch(ctx, uc.cfg.BranchSuffix)
		if err != nil {
			return result, goerr.Wrap(err, "failed to bump version", goerr.T(types.ErrTagManifest))
		}
		result.NewVersion = next
		result.State = model.StateVersionBumped
		uc.reporter.Info("Version bumped %s -> %s", version, next)
	}

	artifactPath, err := uc.build(ctx, version)
	if err != nil {
		return result, err
	}
	result.Artifact = artifactPath
	result.State = model.StateBuilt

	if opts.Action != model.ActionPublish {
		return result, nil
	}

	ok, err := uc.prompter.Confirm(ctx,
		"This will create a release from "+uc.cfg.Target+" and publish it immediately, proceed?")
	if err != nil {
		return result, goerr.Wrap(err, "failed to confirm publish")
	}
	if !ok {
		logger.Info("Publish cancelled by operator")
		uc.reporter.Info("Publish cancelled, no release was created")
		result.State = model.StateAborted
		return result, nil
	}

	if uc.client == nil {
		return result, goerr.New("release client is not configured", goerr.T(types.ErrTagConfig))
	}

	body, err := uc.prompter.ReadText(ctx, releaseNotesQuestion)
	if err != nil {
		return result, goerr.Wrap(err, "failed to read release notes")
	}

	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return result, goerr.Wrap(err, "failed to read artifact",
			goerr.T(types.ErrTagArtifact),
			goerr.V("path", artifactPath))
	}
	artifact := &model.Artifact{
		Name: filepath.Base(artifactPath),
		Path: artifactPath,
		Data: data,
	}

	req := model.NewReleaseRequest(version, uc.cfg.Target, body, uc.cfg.Prerelease)
	pageURL := model.ReleasePageURL(uc.cfg.WebURL, uc.cfg.Owner, uc.cfg.Repo, req.TagName)

	uc.reporter.Info("\nPreparing to create release on %s/%s\n", uc.cfg.Owner, uc.cfg.Repo)

	handle, err := uc.client.CreateRelease(ctx, req)
	if err != nil {
		status, detail := describe(err)
		uc.reporter.Fail(status, "Failed to create release. Response: %s (%s)\n%s", detail, pageURL, createReleaseHints)
		return result, goerr.Wrap(err, "failed to create release",
			goerr.T(types.ErrTagReleaseCreate),
			goerr.V("tag", req.TagName))
	}
	result.Release = handle
	result.ReleaseState = model.ReleaseCreated
	result.State = model.StateReleased
	uc.reporter.Done("Release %s created successfully. (%s)", req.TagName, pageURL)

	uc.reporter.Info("\nAttempting to add %s to %s", artifact.Name, req.TagName)
	uc.reporter.OK("Artifact loaded (%d bytes)", len(artifact.Data))

	if err := uc.client.UploadAsset(ctx, handle, artifact); err != nil {
		status, detail := describe(err)
		uc.reporter.Fail(status, "Failed to add '%s' to %s: %s", artifact.Name, req.TagName, detail)
		uc.reporter.Info("\nAutomatically deleting release %s, as adding release asset failed\n", req.TagName)

		result.RollbackErr = uc.rollback(ctx, req.TagName, pageURL)
		if result.RollbackErr == nil {
			result.ReleaseState = model.ReleaseRolledBack
			result.State = model.StateRolledBack
		}

		return result, goerr.Wrap(err, "failed to upload release asset",
			goerr.T(types.ErrTagAssetUpload),
			goerr.V("tag", req.TagName),
			goerr.V("rolled_back", result.RollbackErr == nil))
	}

	result.ReleaseState = model.ReleaseAssetAttached
	result.State = model.StateAssetAttached
	uc.reporter.Done("Successfully added '%s' to release %s.", artifact.Name, req.TagName)

	logger.Info("Release published",
		"tag", req.TagName,
		"asset", artifact.Name,
		"size_bytes", len(artifact.Data),
	)

	return result, nil
}

// build runs the package command and returns the expected artifact path
func (uc *publishUseCase) build(ctx context.Context, version string) (string, error) {
	code, err := uc.runner.Run(ctx, uc.cfg.PackageCommand)
	if err != nil {
		uc.reporter.Fail(0, "Failed to run package command: %s", uc.cfg.PackageCommand)
		return "", goerr.Wrap(err, "failed to run package command",
			goerr.T(types.ErrTagBuildFailure),
			goerr.V("command", uc.cfg.PackageCommand))
	}
	if code != 0 {
		uc.reporter.Fail(0, "Package command exited with code %d: %s", code, uc.cfg.PackageCommand)
		return "", goerr.New("package command failed",
			goerr.T(types.ErrTagBuildFailure),
			goerr.V("command", uc.cfg.PackageCommand),
			goerr.V("exit_code", code))
	}

	path := filepath.Join(uc.cfg.WorkDir, model.ArtifactName(uc.cfg.Product, version, uc.cfg.Extension))
	if _, err := os.Stat(path); err != nil {
		uc.reporter.Fail(0, "Expected artifact %s was not produced", path)
		return "", goerr.Wrap(err, "artifact not found",
			goerr.T(types.ErrTagArtifact),
			goerr.V("path", path))
	}

	uc.reporter.Done("Packaged %s", path)
	return path, nil
}

// rollback deletes the release identified by tag. Failures are warnings with a
// manual cleanup link and are returned, never retried.
func (uc *publishUseCase) rollback(ctx context.Context, tag, pageURL string) error {
	logger := logging.From(ctx)

	handle, err := uc.client.FetchReleaseHandle(ctx, tag)
	if err != nil {
		uc.reporter.Warn("Failed to look up release '%s'%s. Delete it manually at %s", tag, statusNote(err), pageURL)
		logger.Warn("Rollback failed", "tag", tag, "error", err)
		return goerr.Wrap(err, "failed to look up release for rollback",
			goerr.T(types.ErrTagReleaseDelete),
			goerr.V("tag", tag))
	}

	if err := uc.client.DeleteRelease(ctx, handle); err != nil {
		uc.reporter.Warn("Failed to delete release '%s'%s. Delete it manually at %s", tag, statusNote(err), pageURL)
		logger.Warn("Rollback failed", "tag", tag, "error", err)
		return goerr.Wrap(err, "failed to delete release",
			goerr.T(types.ErrTagReleaseDelete),
			goerr.V("tag", tag))
	}

	uc.reporter.Done("Successfully deleted release '%s'", tag)
	return nil
}

// statusNote renders the HTTP status of an API error for a warning line
func statusNote(err error) string {
	if status, _ := describe(err); status != 0 {
		return fmt.Sprintf(" (HTTP %d)", status)
	}
	return ""
}

// describe extracts the HTTP status and response body from an API error
func describe(err error) (int, string) {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Body
	}
	return 0, err.Error()
}
