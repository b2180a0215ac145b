// Package managers loads package-manager backend definitions from the user
// configuration and drives them through the shell.
package managers

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/hooks"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// Registry resolves backend names to loaded, validated managers
type Registry struct {
	fs     types.FS
	paths  paths.Paths
	runner execution.Runner
	hooks  *hooks.Runner

	mu    sync.Mutex
	cache map[string]*Manager
}

// NewRegistry creates a registry reading <config>/managers
func NewRegistry(fsys types.FS, p paths.Paths, runner execution.Runner, hookRunner *hooks.Runner) *Registry {
	return &Registry{
		fs:     fsys,
		paths:  p,
		runner: runner,
		hooks:  hookRunner,
		cache:  make(map[string]*Manager),
	}
}

// Load reads, decodes and validates the definition of name. Results are
// cached for the lifetime of the registry.
func (r *Registry) Load(name string) (*Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.cache[name]; ok {
		return m, nil
	}

	logger := logging.GetLogger("managers")

	if err := paths.ValidateName("manager", name); err != nil {
		return nil, err
	}

	path := r.paths.ManagerFile(name)
	data, err := r.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrManagerNotFound, "no definition for manager %q", name).
				WithDetails(map[string]interface{}{"manager": name, "path": path})
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	def := defaultDefinition()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManagerInvalid, "failed to parse manager %q", name).
			WithDetails(map[string]interface{}{"manager": name, "path": path})
	}
	def.applyDefaults(name)

	if err := def.Validate(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManagerInvalid, "manager %q is invalid", name).
			WithDetails(map[string]interface{}{"manager": name, "path": path})
	}

	m := &Manager{
		Name:       name,
		Definition: def,
		runner:     r.runner,
		hooks:      r.hooks,
	}
	r.cache[name] = m
	logger.Debug().Str("manager", name).Str("path", path).Msg("Loaded manager definition")
	return m, nil
}

// List returns the sorted names of all defined managers.
func (r *Registry) List() ([]string, error) {
	dir := r.paths.ManagersDir()
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir).
			WithDetail("path", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), paths.TomlExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), paths.TomlExt))
	}
	sort.Strings(names)
	return names, nil
}
