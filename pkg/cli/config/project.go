package config

import "github.com/urfave/cli/v3"

// Project holds manifest and packaging configuration
type Project struct {
	Manifest       string
	Product        string
	Extension      string
	PackageCommand string
	BranchSuffix   string
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "manifest",
			Usage:       "Path to the JSON manifest holding the version",
			Value:       "package.json",
			Destination: &c.Manifest,
			Sources:     cli.EnvVars("RELPUB_MANIFEST"),
		},
		&cli.StringFlag{
			Name:        "product",
			Usage:       "Artifact name prefix",
			Value:       "frc-devtools",
			Destination: &c.Product,
			Sources:     cli.EnvVars("RELPUB_PRODUCT"),
		},
		&cli.StringFlag{
			Name:        "extension",
			Usage:       "Artifact file extension",
			Value:       "vsix",
			Destination: &c.Extension,
			Sources:     cli.EnvVars("RELPUB_EXTENSION"),
		},
		&cli.StringFlag{
			Name:        "package-command",
			Usage:       "Shell command that produces the artifact",
			Value:       "vsce package",
			Destination: &c.PackageCommand,
			Sources:     cli.EnvVars("RELPUB_PACKAGE_COMMAND"),
		},
		&cli.StringFlag{
			Name:        "branch-suffix",
			Usage:       "Suffix appended to the bumped version",
			Value:       "-DEV",
			Destination: &c.BranchSuffix,
			Sources:     cli.EnvVars("RELPUB_BRANCH_SUFFIX"),
		},
	}
}

// ApplyFile fills settings that were not given on the command line
func (c *Project) ApplyFile(f *File, isSet func(name string) bool) {
	s := f.Project
	setString(&c.Manifest, s.Manifest, "manifest", isSet)
	setString(&c.Product, s.Product, "product", isSet)
	setString(&c.Extension, s.Extension, "extension", isSet)
	setString(&c.PackageCommand, s.PackageCommand, "package-command", isSet)
	if s.BranchSuffix != nil && !isSet("branch-suffix") {
		c.BranchSuffix = *s.BranchSuffix
	}
}
