package interfaces

import (
	"context"

	"github.com/m-mizutani/relpub/pkg/domain/model"
)

// ReleaseClient defines operations on the release hosting API.
// Every call is attempted once; a non-2xx response is returned as an error.
type ReleaseClient interface {
	// CreateRelease creates and publishes a release
	CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.ReleaseHandle, error)

	// FetchReleaseHandle looks up a release by tag
	FetchReleaseHandle(ctx context.Context, tag string) (*model.ReleaseHandle, error)

	// DeleteRelease deletes the release behind handle
	DeleteRelease(ctx context.Context, handle *model.ReleaseHandle) error

	// UploadAsset attaches the artifact to the release as a binary asset
	UploadAsset(ctx context.Context, handle *model.ReleaseHandle, artifact *model.Artifact) error
}
