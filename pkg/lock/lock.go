// Package lock provides the advisory cross-process lock guarding the
// generation store. The lock is a sentinel file plus an owner file holding
// the token of the process that created it. Acquisition never blocks.
package lock

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/filesystem"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// Token identifies one process as lock owner
type Token string

// NewToken returns a random token. Generate it once per process.
func NewToken() Token {
	return Token(uuid.NewString())
}

// Locker is implemented by Lock
type Locker interface {
	Acquire() error
	Release() error
	ForceUnlock() error
	IsLocked() (bool, error)
}

// Lock is the store lock as seen by one process
type Lock struct {
	fs        types.FS
	storeDir  string
	lockPath  string
	ownerPath string
	token     Token
}

// New creates a lock for the store described by p
func New(fsys types.FS, p paths.Paths, token Token) *Lock {
	return &Lock{
		fs:        fsys,
		storeDir:  p.StoreDir(),
		lockPath:  p.LockFile(),
		ownerPath: p.LockOwnerFile(),
		token:     token,
	}
}

// Token returns this process' token
func (l *Lock) Token() Token {
	return l.token
}

// Acquire takes the lock. It is a no-op when we already own it and fails
// with ErrLockHeld when anyone else does.
func (l *Lock) Acquire() error {
	logger := logging.GetLogger("lock")

	if err := l.fs.MkdirAll(l.storeDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", l.storeDir).
			WithDetail("path", l.storeDir)
	}

	f, err := l.fs.OpenFile(l.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if !stderrors.Is(err, fs.ErrExist) {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to create lock file %s", l.lockPath).
				WithDetail("path", l.lockPath)
		}

		owner, ownerErr := l.Owner()
		if ownerErr != nil {
			return ownerErr
		}
		if owner == l.token {
			logger.Trace().Msg("Lock already held by this process")
			return nil
		}
		return errors.New(errors.ErrLockHeld, "another hostgen process holds the lock").
			WithDetails(map[string]interface{}{"path": l.lockPath, "owner": string(owner)})
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close lock file %s", l.lockPath)
	}

	if err := filesystem.AtomicWrite(l.fs, l.ownerPath, []byte(l.token), 0644); err != nil {
		_ = l.fs.Remove(l.lockPath)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write lock owner %s", l.ownerPath).
			WithDetail("path", l.ownerPath)
	}

	logger.Debug().Str("path", l.lockPath).Str("token", string(l.token)).Msg("Lock acquired")
	return nil
}

// Release drops the lock if we own it or if it has no recorded owner. A
// lock owned by another process is left alone.
func (l *Lock) Release() error {
	logger := logging.GetLogger("lock")

	locked, err := l.IsLocked()
	if err != nil {
		return err
	}
	if !locked {
		return nil
	}

	owner, err := l.Owner()
	if err != nil {
		return err
	}
	if owner != "" && owner != l.token {
		logger.Warn().Str("owner", string(owner)).Msg("Lock belongs to another process, leaving it")
		return nil
	}

	if err := l.remove(); err != nil {
		return err
	}
	logger.Debug().Str("path", l.lockPath).Msg("Lock released")
	return nil
}

// ForceUnlock removes the lock whoever owns it
func (l *Lock) ForceUnlock() error {
	if err := l.remove(); err != nil {
		return err
	}
	logger := logging.GetLogger("lock")
	logger.Info().Str("path", l.lockPath).Msg("Lock forcibly removed")
	return nil
}

// IsLocked reports whether the sentinel file exists
func (l *Lock) IsLocked() (bool, error) {
	if _, err := l.fs.Stat(l.lockPath); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", l.lockPath).
			WithDetail("path", l.lockPath)
	}
	return true, nil
}

// Owner returns the recorded owner token, empty when none is recorded
func (l *Lock) Owner() (Token, error) {
	data, err := l.fs.ReadFile(l.ownerPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", l.ownerPath).
			WithDetail("path", l.ownerPath)
	}
	return Token(strings.TrimSpace(string(data))), nil
}

func (l *Lock) remove() error {
	for _, path := range []string{l.ownerPath, l.lockPath} {
		if err := l.fs.Remove(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", path).
				WithDetail("path", path)
		}
	}
	return nil
}

var _ Locker = (*Lock)(nil)
