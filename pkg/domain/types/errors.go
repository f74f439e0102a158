package types

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Error kinds. Attach with goerr.T and test with goerr.HasTag.
var (
	ErrTagConfig        = goerr.NewTag("config_error")
	ErrTagManifest      = goerr.NewTag("manifest_error")
	ErrTagBuildFailure  = goerr.NewTag("build_failure")
	ErrTagArtifact      = goerr.NewTag("artifact_error")
	ErrTagReleaseCreate = goerr.NewTag("release_create_error")
	ErrTagReleaseFetch  = goerr.NewTag("release_fetch_error")
	ErrTagReleaseDelete = goerr.NewTag("release_delete_error")
	ErrTagAssetUpload   = goerr.NewTag("asset_upload_error")
)

// APIError is a non-2xx response from the release hosting API
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Body)
}
