package core

import (
	"context"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/history"
	"github.com/arthur-debert/hostgen/pkg/hooks"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// BuildResult describes a finished build
type BuildResult struct {
	Generation int
	FirstBuild bool
	Changes    []history.Changes
}

// Commit snapshots the resolved user configuration as a new generation
// and makes it current.
func (a *App) Commit(message string) (int, error) {
	if strings.TrimSpace(message) == "" {
		return 0, errors.New(errors.ErrInvalidInput, "commit message cannot be empty")
	}

	var n int
	err := a.WithLock(func() error {
		gen, err := a.resolver.Resolve(types.SideUser)
		if err != nil {
			return err
		}
		n, err = a.store.Commit(message, gen)
		return err
	})
	return n, err
}

// Build reconciles the host toward the current generation. Backends are
// processed in name order: additions are installed, then removals are
// removed. The built pointer is only moved once every backend succeeded.
func (a *App) Build(ctx context.Context) (*BuildResult, error) {
	var result *BuildResult
	err := a.WithLock(func() error {
		return a.hooks.Around(ctx, "", hooks.BuildAction, func() error {
			var err error
			result, err = a.build(ctx)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *App) build(ctx context.Context) (*BuildResult, error) {
	logger := logging.GetLogger("core.build")

	current, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	target, err := a.resolver.Resolve(types.SideSystem)
	if err != nil {
		return nil, err
	}

	firstBuild, before, err := a.builtGeneration()
	if err != nil {
		return nil, err
	}

	changes := history.Compare(before, target)
	logger.Info().
		Int("generation", current).
		Bool("first_build", firstBuild).
		Int("managers", len(changes)).
		Msg("Building generation")

	for _, c := range changes {
		if err := a.apply(ctx, c); err != nil {
			return nil, err
		}
	}

	if err := a.store.SetBuilt(current); err != nil {
		return nil, err
	}
	logger.Info().Int("generation", current).Msg("Build finished")

	return &BuildResult{Generation: current, FirstBuild: firstBuild, Changes: changes}, nil
}

// builtGeneration returns the last built generation, or an empty one when
// nothing has been built yet.
func (a *App) builtGeneration() (firstBuild bool, gen types.Generation, err error) {
	built, err := a.store.HasBeenBuilt()
	if err != nil {
		return false, types.Generation{}, err
	}
	if !built {
		return true, types.NewGeneration(), nil
	}
	n, err := a.store.Built()
	if err != nil {
		return false, types.Generation{}, err
	}
	gen, err = a.store.Get(n)
	if err != nil {
		return false, types.Generation{}, err
	}
	return false, gen, nil
}

func (a *App) apply(ctx context.Context, c history.Changes) error {
	manager, err := a.registry.Load(c.Manager)
	if err != nil {
		return err
	}
	adds, removes := c.Entries.Split()
	logger := logging.GetLogger("core.build")
	logger.Debug().
		Str("manager", c.Manager).
		Int("adds", len(adds)).
		Int("removes", len(removes)).
		Msg("Applying changes")

	if err := manager.Install(ctx, adds); err != nil {
		return err
	}
	return manager.Remove(ctx, removes)
}

// Rollback moves current back by the given number of generations
func (a *App) Rollback(by int) (int, error) {
	var n int
	err := a.WithLock(func() error {
		current, err := a.store.Current()
		if err != nil {
			return err
		}
		n = current - by
		if err := a.store.SetCurrent(n); err != nil {
			return err
		}
		a.logPointer("current", n)
		return nil
	})
	return n, err
}

// Latest points current at the newest generation
func (a *App) Latest() (int, error) {
	var n int
	err := a.WithLock(func() error {
		var err error
		n, err = a.store.Latest()
		if err != nil {
			return err
		}
		if err := a.store.SetCurrent(n); err != nil {
			return err
		}
		a.logPointer("current", n)
		return nil
	})
	return n, err
}

// SetCurrent points current at generation n
func (a *App) SetCurrent(n int) error {
	return a.WithLock(func() error {
		if err := a.store.SetCurrent(n); err != nil {
			return err
		}
		a.logPointer("current", n)
		return nil
	})
}

func (a *App) logPointer(name string, n int) {
	logger := logging.GetLogger("core")
	event := logger.Debug()
	if a.verbose {
		event = logger.Info()
	}
	event.Str("pointer", name).Int("generation", n).Msg("Pointer updated")
}
