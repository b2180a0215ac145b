package generations

import (
	stderrors "errors"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/config"
	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/filesystem"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// MissingCommitMessage is shown for a generation without a commit file
const MissingCommitMessage = "<< COMMIT MESSAGE MISSING >>"

// Entry describes one generation in a listing
type Entry struct {
	Number    int    `json:"number" yaml:"number"`
	Message   string `json:"message" yaml:"message"`
	IsCurrent bool   `json:"current" yaml:"current"`
	IsBuilt   bool   `json:"built" yaml:"built"`
}

// Store is the generation store rooted at <store>/generations
type Store struct {
	fs    types.FS
	paths paths.Paths
}

// NewStore creates a store
func NewStore(fsys types.FS, p paths.Paths) *Store {
	return &Store{fs: fsys, paths: p}
}

// Numbers returns the existing generation numbers in ascending order.
// A missing generations directory is an empty store.
func (s *Store) Numbers() ([]int, error) {
	logger := logging.GetLogger("generations")
	dir := s.paths.GenerationsDir()

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir).
			WithDetail("path", dir)
	}

	var numbers []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		n, err := strconv.Atoi(entry.Name())
		if err != nil || n < 1 {
			logger.Warn().Str("path", dir).Str("entry", entry.Name()).Msg("Skipping unexpected entry in generations directory")
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

// Latest returns the highest generation number, 0 for an empty store
func (s *Store) Latest() (int, error) {
	numbers, err := s.Numbers()
	if err != nil {
		return 0, err
	}
	if len(numbers) == 0 {
		return 0, nil
	}
	return numbers[len(numbers)-1], nil
}

// Oldest returns the lowest generation number
func (s *Store) Oldest() (int, error) {
	numbers, err := s.Numbers()
	if err != nil {
		return 0, err
	}
	if len(numbers) == 0 {
		return 0, errors.New(errors.ErrNoGenerations, "there are no generations")
	}
	return numbers[0], nil
}

// Exists reports whether generation n has a record directory
func (s *Store) Exists(n int) (bool, error) {
	if n < 1 {
		return false, nil
	}
	dir := s.paths.GenerationDir(n)
	info, err := s.fs.Stat(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dir).
			WithDetail("path", dir)
	}
	return info.IsDir(), nil
}

// Commit stores gen as generation Latest()+1 with message and makes it
// current. A failure after the directory is created leaves an orphan that
// no pointer references.
func (s *Store) Commit(message string, gen types.Generation) (int, error) {
	logger := logging.GetLogger("generations")

	latest, err := s.Latest()
	if err != nil {
		return 0, err
	}
	n := latest + 1

	data, err := config.EncodeGeneration(gen)
	if err != nil {
		return 0, err
	}

	dir := s.paths.GenerationDir(n)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("path", dir)
	}

	files := []struct {
		path string
		data []byte
	}{
		{s.paths.CommitFile(n), []byte(message)},
		{s.paths.GenerationFile(n), data},
	}
	for _, f := range files {
		if err := s.fs.WriteFile(f.path, f.data, 0644); err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", f.path).
				WithDetail("path", f.path)
		}
	}

	if err := s.SetCurrent(n); err != nil {
		return 0, err
	}

	logger.Info().Int("generation", n).Str("message", message).Msg("Committed generation")
	return n, nil
}

// Get reads generation n
func (s *Store) Get(n int) (types.Generation, error) {
	exists, err := s.Exists(n)
	if err != nil {
		return types.Generation{}, err
	}
	if !exists {
		return types.Generation{}, notFound(n)
	}

	gen, err := config.ReadGeneration(s.fs, s.paths.GenerationFile(n))
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return types.Generation{}, errors.Wrapf(err, errors.ErrGenerationNotFound,
				"generation %d has no generation file", n).WithDetail("generation", n)
		}
		return types.Generation{}, err
	}
	return gen, nil
}

// Message returns the commit message of generation n, or the missing
// message placeholder.
func (s *Store) Message(n int) (string, error) {
	path := s.paths.CommitFile(n)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return MissingCommitMessage, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// List returns every generation in ascending order
func (s *Store) List() ([]Entry, error) {
	numbers, err := s.Numbers()
	if err != nil {
		return nil, err
	}

	current, err := s.optionalPointer(s.paths.CurrentPointer(), "current")
	if err != nil {
		return nil, err
	}
	built, err := s.optionalPointer(s.paths.BuiltPointer(), "built")
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(numbers))
	for _, n := range numbers {
		msg, err := s.Message(n)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Number:    n,
			Message:   msg,
			IsCurrent: n == current,
			IsBuilt:   n == built,
		})
	}
	return entries, nil
}

// GenerationFile returns the path of generation n's serialized generation
func (s *Store) GenerationFile(n int) string {
	return s.paths.GenerationFile(n)
}

// CurrentFile returns the generation file the current pointer refers to
func (s *Store) CurrentFile() (string, error) {
	current, err := s.Current()
	if err != nil {
		return "", err
	}
	return s.paths.GenerationFile(current), nil
}

// Delete removes generation n. Deleting the current or built generation is
// refused with a warning and reports false without error.
func (s *Store) Delete(n int) (bool, error) {
	logger := logging.GetLogger("generations")

	isCurrent, err := s.IsCurrent(n)
	if err != nil {
		return false, err
	}
	if isCurrent {
		logger.Warn().Int("generation", n).Msg("Not deleting the current generation, it is protected")
		return false, nil
	}

	isBuilt, err := s.IsBuilt(n)
	if err != nil {
		return false, err
	}
	if isBuilt {
		logger.Warn().Int("generation", n).Msg("Not deleting the built generation, it is protected")
		return false, nil
	}

	exists, err := s.Exists(n)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, notFound(n)
	}

	dir := s.paths.GenerationDir(n)
	if err := s.fs.RemoveAll(dir); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to delete %s", dir).
			WithDetail("path", dir)
	}
	logger.Info().Int("generation", n).Msg("Deleted generation")
	return true, nil
}

// DeleteOld deletes up to count of the oldest generations. Protected ones
// are skipped but still count towards count. Returns how many were deleted.
func (s *Store) DeleteOld(count int) (int, error) {
	if count < 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, "count must not be negative, got %d", count)
	}
	numbers, err := s.Numbers()
	if err != nil {
		return 0, err
	}
	if count > len(numbers) {
		count = len(numbers)
	}

	deleted := 0
	for _, n := range numbers[:count] {
		ok, err := s.Delete(n)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}

// Move renames generation from to to, carrying the pointers along.
func (s *Store) Move(from, to int) error {
	logger := logging.GetLogger("generations")

	if to < 1 {
		return errors.Newf(errors.ErrOutOfRange, "cannot move generation to %d", to)
	}
	exists, err := s.Exists(from)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(from)
	}
	targetExists, err := s.Exists(to)
	if err != nil {
		return err
	}
	if targetExists {
		return errors.Newf(errors.ErrAlreadyExists, "generation %d already exists", to).
			WithDetail("generation", to)
	}

	wasCurrent, err := s.IsCurrent(from)
	if err != nil {
		return err
	}
	wasBuilt, err := s.IsBuilt(from)
	if err != nil {
		return err
	}

	fromDir, toDir := s.paths.GenerationDir(from), s.paths.GenerationDir(to)
	if err := s.fs.Rename(fromDir, toDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s to %s", fromDir, toDir).
			WithDetails(map[string]interface{}{"from": fromDir, "to": toDir})
	}
	logger.Debug().Int("from", from).Int("to", to).Msg("Moved generation")

	if wasCurrent {
		if err := s.writePointer(s.paths.CurrentPointer(), to); err != nil {
			return err
		}
	}
	if wasBuilt {
		if err := s.writePointer(s.paths.BuiltPointer(), to); err != nil {
			return err
		}
	}
	return nil
}

func notFound(n int) error {
	return errors.Newf(errors.ErrGenerationNotFound, "generation %d does not exist", n).
		WithDetail("generation", n)
}

// writePointer replaces a pointer file atomically
func (s *Store) writePointer(path string, n int) error {
	if err := s.fs.MkdirAll(s.paths.GenerationsDir(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", s.paths.GenerationsDir())
	}
	if err := filesystem.AtomicWrite(s.fs, path, []byte(strconv.Itoa(n)), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write pointer %s", path).
			WithDetail("path", path)
	}
	return nil
}
