package core

import (
	"github.com/arthur-debert/hostgen/pkg/generations"
	"github.com/arthur-debert/hostgen/pkg/history"
)

// List returns every generation in ascending order
func (a *App) List() ([]generations.Entry, error) {
	return a.store.List()
}

// Diff compares two stored generations backend by backend
func (a *App) Diff(oldN, newN int) ([]history.Changes, error) {
	before, err := a.store.Get(oldN)
	if err != nil {
		return nil, err
	}
	after, err := a.store.Get(newN)
	if err != nil {
		return nil, err
	}
	return history.Compare(before, after), nil
}

// Delete removes generation n. Deleting the current or built generation
// is refused with a warning and reports false.
func (a *App) Delete(n int) (bool, error) {
	var deleted bool
	err := a.WithLock(func() error {
		var err error
		deleted, err = a.store.Delete(n)
		return err
	})
	return deleted, err
}

// DeleteOld deletes up to count of the oldest generations
func (a *App) DeleteOld(count int) (int, error) {
	var deleted int
	err := a.WithLock(func() error {
		var err error
		deleted, err = a.store.DeleteOld(count)
		return err
	})
	return deleted, err
}

// CleanDups deletes generations equal to their predecessor
func (a *App) CleanDups() (int, error) {
	var deleted int
	err := a.WithLock(func() error {
		var err error
		deleted, err = a.store.CleanDups(a.verbose)
		return err
	})
	return deleted, err
}

// Align renumbers generations densely from 1
func (a *App) Align() (int, error) {
	var moved int
	err := a.WithLock(func() error {
		var err error
		moved, err = a.store.Align(a.verbose)
		return err
	})
	return moved, err
}

// TidyUp runs CleanDups then Align
func (a *App) TidyUp() (deleted, aligned int, err error) {
	err = a.WithLock(func() error {
		var err error
		deleted, aligned, err = a.store.TidyUp()
		return err
	})
	return deleted, aligned, err
}
