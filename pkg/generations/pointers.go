package generations

import (
	stderrors "errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/logging"
)

// Current returns the generation the current pointer refers to
func (s *Store) Current() (int, error) {
	return s.readPointer(s.paths.CurrentPointer(), "current")
}

// Built returns the generation last applied
func (s *Store) Built() (int, error) {
	return s.readPointer(s.paths.BuiltPointer(), "built")
}

// HasBeenBuilt reports whether a built pointer exists
func (s *Store) HasBeenBuilt() (bool, error) {
	path := s.paths.BuiltPointer()
	if _, err := s.fs.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
			WithDetail("path", path)
	}
	return true, nil
}

// IsCurrent reports whether n is the current generation. Without a
// current pointer nothing is current.
func (s *Store) IsCurrent(n int) (bool, error) {
	current, err := s.optionalPointer(s.paths.CurrentPointer(), "current")
	if err != nil {
		return false, err
	}
	return current == n, nil
}

// IsBuilt reports whether n is the built generation
func (s *Store) IsBuilt(n int) (bool, error) {
	built, err := s.optionalPointer(s.paths.BuiltPointer(), "built")
	if err != nil {
		return false, err
	}
	return built == n, nil
}

// SetCurrent points current at n, which must be an existing generation
// in 1..Latest().
func (s *Store) SetCurrent(n int) error {
	if err := s.checkTarget(n); err != nil {
		return err
	}
	if err := s.writePointer(s.paths.CurrentPointer(), n); err != nil {
		return err
	}
	logger := logging.GetLogger("generations")
	logger.Info().Int("generation", n).Msg("Set 'current'")
	return nil
}

// SetBuilt points built at n, which must be an existing generation in
// 1..Latest().
func (s *Store) SetBuilt(n int) error {
	if err := s.checkTarget(n); err != nil {
		return err
	}
	if err := s.writePointer(s.paths.BuiltPointer(), n); err != nil {
		return err
	}
	logger := logging.GetLogger("generations")
	logger.Info().Int("generation", n).Msg("Set 'built'")
	return nil
}

func (s *Store) checkTarget(n int) error {
	latest, err := s.Latest()
	if err != nil {
		return err
	}
	if n < 1 || n > latest {
		return errors.Newf(errors.ErrOutOfRange, "generation %d is out of range 1..%d", n, latest).
			WithDetails(map[string]interface{}{"generation": n, "latest": latest})
	}
	exists, err := s.Exists(n)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(n)
	}
	return nil
}

func (s *Store) readPointer(path, name string) (int, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return 0, errors.Wrapf(err, errors.ErrPointerMissing, "no '%s' generation is set", name).
				WithDetail("path", path)
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrPointerCorrupt, "'%s' pointer is corrupted", name).
			WithDetails(map[string]interface{}{"path": path, "content": string(data)})
	}
	return n, nil
}

// optionalPointer reads a pointer, returning 0 when it is absent
func (s *Store) optionalPointer(path, name string) (int, error) {
	n, err := s.readPointer(path, name)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrPointerMissing) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
