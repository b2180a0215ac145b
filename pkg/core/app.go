package core

import (
	"github.com/arthur-debert/hostgen/pkg/config"
	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/generations"
	"github.com/arthur-debert/hostgen/pkg/hooks"
	"github.com/arthur-debert/hostgen/pkg/lock"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/managers"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// Options holds the collaborators of an App
type Options struct {
	// FS is the filesystem everything is read from and written to
	FS types.FS
	// Paths is the resolved directory layout
	Paths paths.Paths
	// Hostname selects the machine override file
	Hostname string
	// Runner executes package-manager commands and hooks
	Runner execution.Runner
	// Token identifies this process as lock owner
	Token lock.Token
	// Verbose promotes maintenance progress to info level
	Verbose bool
}

// App wires the store, resolver, registry and lock together
type App struct {
	fs       types.FS
	paths    paths.Paths
	store    *generations.Store
	resolver *config.Resolver
	registry *managers.Registry
	hooks    *hooks.Runner
	lock     *lock.Lock
	verbose  bool
}

// New creates an App from opts
func New(opts Options) (*App, error) {
	if opts.FS == nil || opts.Paths == nil || opts.Runner == nil {
		return nil, errors.New(errors.ErrInvalidInput, "filesystem, paths and runner are required")
	}
	if opts.Token == "" {
		opts.Token = lock.NewToken()
	}

	store := generations.NewStore(opts.FS, opts.Paths)
	hookRunner := hooks.NewRunner(opts.FS, opts.Paths, opts.Runner)

	logger := logging.GetLogger("core")
	logger.Debug().
		Str("config_dir", opts.Paths.ConfigDir()).
		Str("store_dir", opts.Paths.StoreDir()).
		Str("hostname", opts.Hostname).
		Msg("Created app")

	return &App{
		fs:       opts.FS,
		paths:    opts.Paths,
		store:    store,
		resolver: config.NewResolver(opts.FS, opts.Paths, opts.Hostname, store),
		registry: managers.NewRegistry(opts.FS, opts.Paths, opts.Runner, hookRunner),
		hooks:    hookRunner,
		lock:     lock.New(opts.FS, opts.Paths, opts.Token),
		verbose:  opts.Verbose,
	}, nil
}

// Store exposes the generation store
func (a *App) Store() *generations.Store {
	return a.store
}

// Lock exposes the process lock
func (a *App) Lock() *lock.Lock {
	return a.lock
}
