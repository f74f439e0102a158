package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// GitHub holds release hosting configuration
type GitHub struct {
	Owner      string
	Repo       string
	Target     string
	Prerelease bool
	TokenFile  string
	APIURL     string
	UploadURL  string
	WebURL     string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Owner of the repository releases are published to",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("RELPUB_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Repository releases are published to",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("RELPUB_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-target",
			Usage:       "Branch or commit the release tag is created from",
			Value:       "main",
			Destination: &c.Target,
			Sources:     cli.EnvVars("RELPUB_GITHUB_TARGET"),
		},
		&cli.BoolFlag{
			Name:        "github-prerelease",
			Usage:       "Mark created releases as pre-release",
			Value:       true,
			Destination: &c.Prerelease,
			Sources:     cli.EnvVars("RELPUB_GITHUB_PRERELEASE"),
		},
		&cli.StringFlag{
			Name:        "github-token-file",
			Usage:       "File containing the GitHub token",
			Value:       "GH_TOKEN",
			Destination: &c.TokenFile,
			Sources:     cli.EnvVars("RELPUB_GITHUB_TOKEN_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Value:       "https://api.github.com",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("RELPUB_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-upload-url",
			Usage:       "Base URL for asset uploads (defaults to the API URL)",
			Destination: &c.UploadURL,
			Sources:     cli.EnvVars("RELPUB_GITHUB_UPLOAD_URL"),
		},
		&cli.StringFlag{
			Name:        "github-web-url",
			Usage:       "Base URL of release pages",
			Value:       "https://github.com",
			Destination: &c.WebURL,
			Sources:     cli.EnvVars("RELPUB_GITHUB_WEB_URL"),
		},
	}
}

// ApplyFile fills settings that were not given on the command line
func (c *GitHub) ApplyFile(f *File, isSet func(name string) bool) {
	s := f.GitHub
	setString(&c.Owner, s.Owner, "github-owner", isSet)
	setString(&c.Repo, s.Repo, "github-repo", isSet)
	setString(&c.Target, s.Target, "github-target", isSet)
	setString(&c.TokenFile, s.TokenFile, "github-token-file", isSet)
	setString(&c.APIURL, s.APIURL, "github-api-url", isSet)
	setString(&c.UploadURL, s.UploadURL, "github-upload-url", isSet)
	setString(&c.WebURL, s.WebURL, "github-web-url", isSet)
	if s.Prerelease != nil && !isSet("github-prerelease") {
		c.Prerelease = *s.Prerelease
	}
}

// Validate checks the settings required to publish
func (c *GitHub) Validate() error {
	if c.Owner == "" {
		return goerr.New("github owner is required to publish", goerr.T(types.ErrTagConfig))
	}
	if c.Repo == "" {
		return goerr.New("github repo is required to publish", goerr.T(types.ErrTagConfig))
	}
	return nil
}

// LoadToken reads the token file once and trims surrounding whitespace
func (c *GitHub) LoadToken() (types.Token, error) {
	raw, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read token file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", c.TokenFile))
	}

	token := types.NewToken(string(raw))
	if token.IsEmpty() {
		return "", goerr.New("token file is empty",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", c.TokenFile))
	}
	return token, nil
}
