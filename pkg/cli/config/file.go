package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file looked up when --config is not given
const DefaultFile = "relpub.toml"

// File is the TOML project configuration
type File struct {
	Project struct {
		Manifest       string  `toml:"manifest"`
		Product        string  `toml:"product"`
		Extension      string  `toml:"extension"`
		PackageCommand string  `toml:"package_command"`
		BranchSuffix   *string `toml:"branch_suffix"` // empty string disables the suffix
	} `toml:"project"`

	GitHub struct {
		Owner      string `toml:"owner"`
		Repo       string `toml:"repo"`
		Target     string `toml:"target"`
		Prerelease *bool  `toml:"prerelease"`
		TokenFile  string `toml:"token_file"`
		APIURL     string `toml:"api_url"`
		UploadURL  string `toml:"upload_url"`
		WebURL     string `toml:"web_url"`
	} `toml:"github"`
}

// LoadFile reads a TOML config file. A missing file yields an empty config
// unless required is set.
func LoadFile(path string, required bool) (*File, error) {
	var f File

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return &f, nil
		}
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", path))
	}

	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", path))
	}

	return &f, nil
}

func setString(dst *string, value, flag string, isSet func(name string) bool) {
	if value != "" && !isSet(flag) {
		*dst = value
	}
}
