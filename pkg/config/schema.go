package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// LegacyGeneration is the flat schema older stores were written with.
type LegacyGeneration struct {
	Imports  []string `toml:"imports"`
	Pkgs     []string `toml:"pkgs"`
	Flatpaks []string `toml:"flatpaks"`
	Crates   []string `toml:"crates"`
}

// Migrate maps the flat lists onto the system, flatpak and cargo backends.
func (l LegacyGeneration) Migrate() types.Generation {
	gen := types.NewGeneration()
	gen.Imports = l.Imports
	gen.Managers["system"] = types.Packages{Items: l.Pkgs}
	gen.Managers["flatpak"] = types.Packages{Items: l.Flatpaks}
	gen.Managers["cargo"] = types.Packages{Items: l.Crates}
	return gen
}

// DecodeGeneration parses a gen.toml document. The current schema is tried
// first; when it fails the legacy schema is tried and migrated. If neither
// matches, the current schema's diagnostic is returned.
func DecodeGeneration(data []byte) (types.Generation, error) {
	gen := types.NewGeneration()
	currentErr := decodeStrict(data, &gen)
	if currentErr == nil {
		if gen.Managers == nil {
			gen.Managers = make(map[string]types.Packages)
		}
		return gen, nil
	}

	var legacy LegacyGeneration
	if err := decodeStrict(data, &legacy); err == nil {
		logger := logging.GetLogger("config.schema")
		logger.Debug().Msg("Decoded generation with legacy schema")
		return legacy.Migrate(), nil
	}

	return types.Generation{}, errors.Wrap(currentErr, errors.ErrConfigParse, describeTomlError(currentErr))
}

// EncodeGeneration serializes a generation in the current schema
func EncodeGeneration(gen types.Generation) ([]byte, error) {
	if gen.Managers == nil {
		gen.Managers = make(map[string]types.Packages)
	}
	if gen.Imports == nil {
		gen.Imports = []string{}
	}
	data, err := toml.Marshal(gen)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode generation")
	}
	return data, nil
}

// ReadGeneration reads and decodes a generation file through fsys.
func ReadGeneration(fsys types.FS, path string) (types.Generation, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return types.Generation{}, errors.Wrapf(err, errors.ErrNotFound, "generation file not found: %s", path).
				WithDetail("path", path)
		}
		return types.Generation{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	gen, err := DecodeGeneration(data)
	if err != nil {
		return types.Generation{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}
	return gen, nil
}

// decodeStrict decodes TOML rejecting keys the target does not declare
func decodeStrict(data []byte, v interface{}) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// describeTomlError renders go-toml's positional diagnostics when present
func describeTomlError(err error) string {
	var decodeErr *toml.DecodeError
	if stderrors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("invalid TOML at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	var strictErr *toml.StrictMissingError
	if stderrors.As(err, &strictErr) {
		return "unknown keys in generation: " + strictErr.String()
	}
	return "invalid generation: " + err.Error()
}
