package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relpub/pkg/cli/config"
	"github.com/m-mizutani/relpub/pkg/domain/types"
)

const sampleConfig = `
[project]
manifest = "ext/package.json"
product = "my-tools"
extension = "zip"
package_command = "make package"
branch_suffix = ""

[github]
owner = "octo"
repo = "tools"
target = "develop"
prerelease = false
token_file = ".token"
api_url = "https://ghe.example/api/v3"
web_url = "https://ghe.example"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func noneSet(string) bool { return false }

func TestLoadFile(t *testing.T) {
	t.Run("Parse sections", func(t *testing.T) {
		f, err := config.LoadFile(writeFile(t, "relpub.toml", sampleConfig), true)
		gt.NoError(t, err)
		gt.Equal(t, f.Project.Product, "my-tools")
		gt.Equal(t, f.GitHub.Owner, "octo")
		gt.V(t, f.GitHub.Prerelease).NotNil()
		gt.Equal(t, *f.GitHub.Prerelease, false)
		gt.V(t, f.Project.BranchSuffix).NotNil()
		gt.Equal(t, *f.Project.BranchSuffix, "")
	})

	t.Run("Missing optional file", func(t *testing.T) {
		f, err := config.LoadFile(filepath.Join(t.TempDir(), "relpub.toml"), false)
		gt.NoError(t, err)
		gt.Equal(t, f.Project.Manifest, "")
	})

	t.Run("Missing required file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "relpub.toml"), true)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})

	t.Run("Malformed file", func(t *testing.T) {
		_, err := config.LoadFile(writeFile(t, "relpub.toml", "[project\nmanifest="), false)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})
}

func TestApplyFile(t *testing.T) {
	f, err := config.LoadFile(writeFile(t, "relpub.toml", sampleConfig), true)
	gt.NoError(t, err)

	t.Run("File overrides defaults", func(t *testing.T) {
		project := config.Project{Manifest: "package.json", Product: "frc-devtools", Extension: "vsix", PackageCommand: "vsce package", BranchSuffix: "-DEV"}
		github := config.GitHub{Target: "main", Prerelease: true, TokenFile: "GH_TOKEN", APIURL: "https://api.github.com", WebURL: "https://github.com"}

		project.ApplyFile(f, noneSet)
		github.ApplyFile(f, noneSet)

		gt.Equal(t, project.Manifest, "ext/package.json")
		gt.Equal(t, project.Product, "my-tools")
		gt.Equal(t, project.Extension, "zip")
		gt.Equal(t, project.PackageCommand, "make package")
		gt.Equal(t, project.BranchSuffix, "")

		gt.Equal(t, github.Owner, "octo")
		gt.Equal(t, github.Repo, "tools")
		gt.Equal(t, github.Target, "develop")
		gt.Equal(t, github.Prerelease, false)
		gt.Equal(t, github.TokenFile, ".token")
		gt.Equal(t, github.APIURL, "https://ghe.example/api/v3")
		gt.Equal(t, github.UploadURL, "")
		gt.Equal(t, github.WebURL, "https://ghe.example")
	})

	t.Run("Explicit flags win", func(t *testing.T) {
		isSet := func(name string) bool {
			return name == "product" || name == "github-owner" || name == "github-prerelease"
		}
		project := config.Project{Product: "from-flag"}
		github := config.GitHub{Owner: "flag-owner", Prerelease: true}

		project.ApplyFile(f, isSet)
		github.ApplyFile(f, isSet)

		gt.Equal(t, project.Product, "from-flag")
		gt.Equal(t, github.Owner, "flag-owner")
		gt.Equal(t, github.Prerelease, true)
		gt.Equal(t, github.Repo, "tools")
	})

	t.Run("Empty file keeps defaults", func(t *testing.T) {
		project := config.Project{BranchSuffix: "-DEV", Product: "frc-devtools"}
		project.ApplyFile(&config.File{}, noneSet)
		gt.Equal(t, project.BranchSuffix, "-DEV")
		gt.Equal(t, project.Product, "frc-devtools")
	})
}

func TestGitHub_LoadToken(t *testing.T) {
	t.Run("Trimmed token", func(t *testing.T) {
		cfg := config.GitHub{TokenFile: writeFile(t, "GH_TOKEN", "  ghp_abc123\n")}
		token, err := cfg.LoadToken()
		gt.NoError(t, err)
		gt.Equal(t, token, types.Token("ghp_abc123"))
	})

	t.Run("Empty token file", func(t *testing.T) {
		cfg := config.GitHub{TokenFile: writeFile(t, "GH_TOKEN", "\n\n")}
		_, err := cfg.LoadToken()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})

	t.Run("Missing token file", func(t *testing.T) {
		cfg := config.GitHub{TokenFile: filepath.Join(t.TempDir(), "GH_TOKEN")}
		_, err := cfg.LoadToken()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	})
}

func TestGitHub_Validate(t *testing.T) {
	gt.NoError(t, (&config.GitHub{Owner: "o", Repo: "r"}).Validate())
	gt.Error(t, (&config.GitHub{Repo: "r"}).Validate())
	gt.Error(t, (&config.GitHub{Owner: "o"}).Validate())
}
