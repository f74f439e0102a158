package model

import (
	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
)

// BumpPatch increments the patch segment of a semantic version and appends suffix.
// Pre-release and build metadata of the input are dropped.
func BumpPatch(version, suffix string) (string, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return "", goerr.Wrap(err, "invalid semantic version", goerr.V("version", version))
	}

	bumped := semver.New(v.Major(), v.Minor(), v.Patch()+1, "", "")
	return bumped.String() + suffix, nil
}
