package core

import (
	"github.com/arthur-debert/hostgen/pkg/logging"
)

// WithLock acquires the process lock, runs fn and releases the lock,
// whether fn failed or not. A release failure is reported only when fn
// succeeded.
func (a *App) WithLock(fn func() error) (err error) {
	if err := a.lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if releaseErr := a.lock.Release(); releaseErr != nil {
			if err == nil {
				err = releaseErr
				return
			}
			logger := logging.GetLogger("core")
			logger.Error().Err(releaseErr).Msg("Failed to release lock")
		}
	}()
	return fn()
}

// ForceUnlock removes the lock whoever owns it
func (a *App) ForceUnlock() error {
	return a.lock.ForceUnlock()
}

// IsUnlocked reports whether no lock is present
func (a *App) IsUnlocked() (bool, error) {
	locked, err := a.lock.IsLocked()
	if err != nil {
		return false, err
	}
	return !locked, nil
}

// LockOwner returns the token recorded for the current lock, if any
func (a *App) LockOwner() (string, error) {
	owner, err := a.lock.Owner()
	return string(owner), err
}
