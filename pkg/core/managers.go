package core

import (
	"context"

	"github.com/arthur-debert/hostgen/pkg/managers"
)

// ManagerInfo is one backend definition as found on disk. Err is set when
// the definition failed to load.
type ManagerInfo struct {
	Name       string
	Definition managers.Definition
	Err        error
}

// Managers loads every backend definition. Invalid ones are reported in
// their entry instead of failing the listing.
func (a *App) Managers() ([]ManagerInfo, error) {
	names, err := a.registry.List()
	if err != nil {
		return nil, err
	}
	infos := make([]ManagerInfo, 0, len(names))
	for _, name := range names {
		info := ManagerInfo{Name: name}
		m, err := a.registry.Load(name)
		if err != nil {
			info.Err = err
		} else {
			info.Definition = m.Definition
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Sync refreshes the index of every defined backend, in name order
func (a *App) Sync(ctx context.Context) error {
	return a.WithLock(func() error {
		return a.eachManager(func(m *managers.Manager) error {
			return m.Sync(ctx)
		})
	})
}

// Upgrade upgrades every defined backend, in name order. With sync set,
// every backend is synced first.
func (a *App) Upgrade(ctx context.Context, sync bool) error {
	return a.WithLock(func() error {
		if sync {
			if err := a.eachManager(func(m *managers.Manager) error {
				return m.Sync(ctx)
			}); err != nil {
				return err
			}
		}
		return a.eachManager(func(m *managers.Manager) error {
			return m.Upgrade(ctx)
		})
	})
}

func (a *App) eachManager(fn func(*managers.Manager) error) error {
	names, err := a.registry.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		m, err := a.registry.Load(name)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}
