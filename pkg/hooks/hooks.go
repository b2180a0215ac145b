// Package hooks runs the optional user executables found in
// <config>/hooks around build and package-manager actions.
package hooks

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// Phase places a hook before or after its action
type Phase string

const (
	Pre  Phase = "pre"
	Post Phase = "post"
)

// BuildAction is the action name of the hooks bracketing a whole build
const BuildAction = "build"

// Name composes a hook file name: <phase>_<hookName>_<action>, or
// <phase>_<action> when hookName is empty.
func Name(phase Phase, hookName, action string) string {
	if hookName == "" {
		return string(phase) + "_" + action
	}
	return string(phase) + "_" + hookName + "_" + action
}

// Runner executes hooks through a shell runner
type Runner struct {
	fs     types.FS
	paths  paths.Paths
	runner execution.Runner
}

// NewRunner creates a hook runner
func NewRunner(fsys types.FS, p paths.Paths, runner execution.Runner) *Runner {
	return &Runner{fs: fsys, paths: p, runner: runner}
}

// Run executes the named hook. A missing hook is skipped silently.
func (r *Runner) Run(ctx context.Context, name string) error {
	logger := logging.GetLogger("hooks")

	if err := paths.ValidateName("hook", name); err != nil {
		return err
	}

	hookPath := r.paths.HookPath(name)
	if _, err := r.fs.Stat(hookPath); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Trace().Str("hook", name).Msg("Hook not present, skipping")
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat hook %s", hookPath).
			WithDetail("path", hookPath)
	}

	logger.Info().Str("hook", name).Str("path", hookPath).Msg("Running hook")
	if err := r.runner.Run(ctx, execution.Quote(hookPath)); err != nil {
		return errors.Wrapf(err, errors.ErrHookFailed, "hook %s failed", name).
			WithDetail("hook", name)
	}
	logger.Debug().Str("hook", name).Msg("Hook succeeded")
	return nil
}

// Around runs the pre hook, fn, then the post hook. The post hook is not
// run when fn fails.
func (r *Runner) Around(ctx context.Context, hookName, action string, fn func() error) error {
	if err := r.Run(ctx, Name(Pre, hookName, action)); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return r.Run(ctx, Name(Post, hookName, action))
}
