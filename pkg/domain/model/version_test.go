package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relpub/pkg/domain/model"
)

func TestBumpPatch(t *testing.T) {
	tests := []struct {
		name    string
		version string
		suffix  string
		want    string
		wantErr bool
	}{
		{
			name:    "Patch bump with branch suffix",
			version: "1.2.3",
			suffix:  "-DEV",
			want:    "1.2.4-DEV",
		},
		{
			name:    "No suffix",
			version: "0.0.9",
			suffix:  "",
			want:    "0.0.10",
		},
		{
			name:    "Major and minor untouched",
			version: "12.34.56",
			suffix:  "-rc",
			want:    "12.34.57-rc",
		},
		{
			name:    "Previous suffix is replaced",
			version: "1.2.4-DEV",
			suffix:  "-DEV",
			want:    "1.2.5-DEV",
		},
		{
			name:    "Not a semantic version",
			version: "latest",
			wantErr: true,
		},
		{
			name:    "Missing patch segment",
			version: "1.2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.BumpPatch(tt.version, tt.suffix)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestArtifactName(t *testing.T) {
	gt.Equal(t, model.ArtifactName("frc-devtools", "1.2.3", "vsix"), "frc-devtools-1.2.3.vsix")
}

func TestNewReleaseRequest(t *testing.T) {
	req := model.NewReleaseRequest("1.2.3", "main", "notes", true)

	gt.Equal(t, req.Name, "v1.2.3")
	gt.Equal(t, req.TagName, "v1.2.3")
	gt.Equal(t, req.TargetCommitish, "main")
	gt.Equal(t, req.Body, "notes")
	gt.Equal(t, req.Draft, false)
	gt.Equal(t, req.Prerelease, true)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input  string
		want   model.Action
		wantOK bool
	}{
		{input: "", want: model.ActionBuildOnly, wantOK: true},
		{input: "build-only", want: model.ActionBuildOnly, wantOK: true},
		{input: "publish", want: model.ActionPublish, wantOK: true},
		{input: "deploy", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run("Action: "+tt.input, func(t *testing.T) {
			got, ok := model.ParseAction(tt.input)
			gt.Equal(t, ok, tt.wantOK)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestReleasePageURL(t *testing.T) {
	got := model.ReleasePageURL("https://github.com", "owner", "repo", "v1.0.0")
	gt.Equal(t, got, "https://github.com/owner/repo/releases/tag/v1.0.0")
}
