package manifest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/interfaces"
	"github.com/m-mizutani/relpub/pkg/domain/model"
	"github.com/m-mizutani/relpub/pkg/domain/types"
	"github.com/m-mizutani/relpub/pkg/utils/logging"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const versionField = "version"

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// Store keeps the version field of a JSON manifest such as package.json
type Store struct {
	path    string
	raw     []byte
	version string
}

var _ interfaces.VersionStore = (*Store)(nil)

// New creates a Store for the manifest at path
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the manifest and returns its version field
func (s *Store) Load(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read manifest",
			goerr.T(types.ErrTagManifest),
			goerr.V("path", s.path))
	}

	if !gjson.ValidBytes(raw) {
		return "", goerr.New("manifest is not valid JSON",
			goerr.T(types.ErrTagManifest),
			goerr.V("path", s.path))
	}

	field := gjson.GetBytes(raw, versionField)
	if !field.Exists() || field.Type != gjson.String || field.Str == "" {
		return "", goerr.New("manifest has no version field",
			goerr.T(types.ErrTagManifest),
			goerr.V("path", s.path))
	}

	s.raw = raw
	s.version = field.Str

	logging.From(ctx).Debug("Loaded manifest", "path", s.path, "version", s.version)
	return s.version, nil
}

// BumpPatch writes the bumped version back to the manifest and returns it.
// Fields other than version are kept as they are.
func (s *Store) BumpPatch(ctx context.Context, suffix string) (string, error) {
	if s.raw == nil {
		if _, err := s.Load(ctx); err != nil {
			return "", err
		}
	}

	next, err := model.BumpPatch(s.version, suffix)
	if err != nil {
		return "", goerr.Wrap(err, "failed to bump version",
			goerr.T(types.ErrTagManifest),
			goerr.V("path", s.path))
	}

	updated, err := sjson.SetBytes(s.raw, versionField, next)
	if err != nil {
		return "", goerr.Wrap(err, "failed to set version field",
			goerr.T(types.ErrTagManifest),
			goerr.V("path", s.path))
	}

	if err := writeAtomic(s.path, pretty.PrettyOptions(updated, prettyOptions)); err != nil {
		return "", goerr.Wrap(err, "failed to write manifest",
			goerr.T(types.ErrTagManifest),
			goerr.V("path", s.path))
	}

	logging.From(ctx).Info("Bumped manifest version",
		"path", s.path,
		"from", s.version,
		"to", next,
	)

	s.raw = updated
	s.version = next
	return next, nil
}

// writeAtomic replaces path with data through a temporary file in the same directory
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("tmp", tmpName))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to sync temporary file", goerr.V("tmp", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("tmp", tmpName))
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return goerr.Wrap(err, "failed to set file mode", goerr.V("tmp", tmpName))
	}

	if err := os.Rename(tmpName, path); err != nil {
		return goerr.Wrap(err, "failed to replace manifest", goerr.V("tmp", tmpName))
	}
	return nil
}
