package core

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/hostgen/pkg/config"
	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/logging"
)

// StarterManagerName is the backend written by InitConfig
const StarterManagerName = "system"

// InitConfig creates the user configuration directory with a starter
// gen.toml and a starter backend definition. An existing directory is
// refused unless force is set, in which case it is replaced entirely.
// Returns the files written.
func (a *App) InitConfig(force bool) ([]string, error) {
	logger := logging.GetLogger("core.init")
	dir := a.paths.ConfigDir()

	_, err := a.fs.Stat(dir)
	switch {
	case err == nil && !force:
		return nil, errors.Newf(errors.ErrAlreadyExists, "configuration already exists at %s, use --force to overwrite it", dir).
			WithDetail("path", dir)
	case err == nil:
		logger.Warn().Str("path", dir).Msg("Overwriting existing configuration")
		if err := a.fs.RemoveAll(dir); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", dir).
				WithDetail("path", dir)
		}
	case !stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dir).
			WithDetail("path", dir)
	}

	for _, d := range []string{dir, a.paths.ManagersDir(), a.paths.HooksDir()} {
		if err := a.fs.MkdirAll(d, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", d).
				WithDetail("path", d)
		}
		logger.Debug().Str("path", d).Msg("Created directory")
	}

	files := []struct {
		path string
		data []byte
	}{
		{a.paths.UserGenerationFile(), config.StarterGeneration()},
		{a.paths.ManagerFile(StarterManagerName), config.StarterManager()},
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := a.fs.WriteFile(f.path, f.data, 0644); err != nil {
			return written, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", f.path).
				WithDetail("path", f.path)
		}
		logger.Info().Str("path", f.path).Msg("Created file")
		written = append(written, f.path)
	}
	return written, nil
}
