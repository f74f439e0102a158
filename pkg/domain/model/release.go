package model

import "fmt"

// ReleaseRequest is the payload used to create one release
type ReleaseRequest struct {
	Name            string `json:"name"`
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish"`
	Body            string `json:"body"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

// NewReleaseRequest builds a non-draft release request for the given version
func NewReleaseRequest(version, target, body string, prerelease bool) *ReleaseRequest {
	tag := TagName(version)
	return &ReleaseRequest{
		Name:            tag,
		TagName:         tag,
		TargetCommitish: target,
		Body:            body,
		Draft:           false,
		Prerelease:      prerelease,
	}
}

// TagName returns the release tag for a version
func TagName(version string) string {
	return "v" + version
}

// ReleaseHandle is the remote identity of a created release
type ReleaseHandle struct {
	Tag     string // Release tag name
	URL     string // API URL of the release, used for delete
	HTMLURL string // Release page URL
}

// ReleaseState tracks one release through its lifecycle
type ReleaseState string

const (
	ReleaseNotCreated    ReleaseState = "not_created"
	ReleaseCreated       ReleaseState = "created"
	ReleaseAssetAttached ReleaseState = "asset_attached"
	ReleaseRolledBack    ReleaseState = "rolled_back"
)

// ReleasePageURL returns the web page of a release tag
func ReleasePageURL(webURL, owner, repo, tag string) string {
	return fmt.Sprintf("%s/%s/%s/releases/tag/%s", webURL, owner, repo, tag)
}
