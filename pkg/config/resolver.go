package config

import (
	stderrors "errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

// CurrentLocator yields the generation file the current pointer refers to
type CurrentLocator interface {
	CurrentFile() (string, error)
}

// Resolver produces the effective generation for a side
type Resolver struct {
	fs       types.FS
	paths    paths.Paths
	hostname string
	current  CurrentLocator
}

// NewResolver creates a resolver. An empty hostname disables machine overrides.
func NewResolver(fsys types.FS, p paths.Paths, hostname string, current CurrentLocator) *Resolver {
	return &Resolver{
		fs:       fsys,
		paths:    p,
		hostname: hostname,
		current:  current,
	}
}

// Resolve reads the base generation for side and merges every import into
// it. The returned generation carries no imports.
func (r *Resolver) Resolve(side types.Side) (types.Generation, error) {
	logger := logging.GetLogger("config.resolver")

	var (
		gen types.Generation
		err error
	)
	switch side {
	case types.SideUser:
		gen, err = r.resolveUser()
	case types.SideSystem:
		gen, err = r.resolveSystem()
	default:
		return types.Generation{}, errors.Newf(errors.ErrInvalidInput, "unknown side %d", side)
	}
	if err != nil {
		return types.Generation{}, err
	}

	resolved, err := r.resolveImports(gen)
	if err != nil {
		return types.Generation{}, err
	}

	logger.Debug().
		Str("side", side.String()).
		Strs("managers", resolved.ManagerNames()).
		Msg("Resolved generation")
	return resolved, nil
}

func (r *Resolver) resolveUser() (types.Generation, error) {
	logger := logging.GetLogger("config.resolver")

	gen, err := ReadGeneration(r.fs, r.paths.UserGenerationFile())
	if err != nil {
		return types.Generation{}, err
	}

	if r.hostname == "" {
		return gen, nil
	}
	if err := paths.ValidateName("hostname", r.hostname); err != nil {
		return types.Generation{}, err
	}

	machineFile := r.paths.MachineGenerationFile(r.hostname)
	if _, statErr := r.fs.Stat(machineFile); statErr != nil {
		if stderrors.Is(statErr, fs.ErrNotExist) {
			logger.Debug().Str("path", machineFile).Msg("No machine override, skipping")
			return gen, nil
		}
		return types.Generation{}, errors.Wrapf(statErr, errors.ErrFileAccess, "failed to stat %s", machineFile).
			WithDetail("path", machineFile)
	}

	machine, err := ReadGeneration(r.fs, machineFile)
	if err != nil {
		return types.Generation{}, err
	}
	gen.Merge(machine)
	logger.Debug().Str("hostname", r.hostname).Msg("Merged machine override")
	return gen, nil
}

func (r *Resolver) resolveSystem() (types.Generation, error) {
	if r.current == nil {
		return types.Generation{}, errors.New(errors.ErrInternal, "resolver has no generation store")
	}
	path, err := r.current.CurrentFile()
	if err != nil {
		return types.Generation{}, err
	}
	return ReadGeneration(r.fs, path)
}

// resolveImports merges imports breadth-first, each name exactly once in
// discovery order. Imports of imported files are followed transitively.
func (r *Resolver) resolveImports(root types.Generation) (types.Generation, error) {
	logger := logging.GetLogger("config.resolver")

	result := types.NewGeneration()
	for name, pkgs := range root.Managers {
		result.Managers[name] = pkgs
	}

	queue := append([]string(nil), root.Imports...)
	visited := make(map[string]bool)
	edges := make(map[string][]string)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true

		if err := paths.ValidateName("import", name); err != nil {
			return types.Generation{}, err
		}

		importFile := r.paths.ImportFile(name)
		imported, err := ReadGeneration(r.fs, importFile)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrNotFound) {
				return types.Generation{}, errors.Wrapf(err, errors.ErrNotFound, "import %q not found", name).
					WithDetail("import", name)
			}
			return types.Generation{}, err
		}

		for _, next := range imported.Imports {
			if next == name {
				logger.Debug().Str("import", name).Msg("Ignoring self-import")
				continue
			}
			edges[name] = append(edges[name], next)
			queue = append(queue, next)
		}

		imported.Imports = nil
		result.Merge(imported)
		logger.Trace().Str("import", name).Msg("Merged import")
	}

	if cycle := findCycle(edges); cycle != nil {
		return types.Generation{}, errors.Newf(errors.ErrImportCycle,
			"import cycle: %s", strings.Join(cycle, " -> ")).
			WithDetail("cycle", cycle)
	}

	result.Imports = nil
	return result, nil
}

// findCycle returns the first cycle in the import graph as a closed path
// (first element repeated at the end), or nil.
func findCycle(edges map[string][]string) []string {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int)
	var stack []string
	var cycle []string

	var visit func(node string) bool
	visit = func(node string) bool {
		state[node] = inProgress
		stack = append(stack, node)
		for _, next := range edges[node] {
			switch state[next] {
			case inProgress:
				for i, n := range stack {
					if n == next {
						cycle = append(append([]string(nil), stack[i:]...), next)
						return true
					}
				}
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[node] = done
		return false
	}

	for _, node := range sortedKeys(edges) {
		if state[node] == unvisited && visit(node) {
			return cycle
		}
	}
	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
