package types

import (
	"maps"
	"slices"
	"sort"
)

// Packages is the ordered list of items declared for one backend
type Packages struct {
	Items []string `toml:"items" json:"items" yaml:"items"`
}

// Generation is the declared desired state: imports plus items per backend.
type Generation struct {
	Imports  []string            `toml:"imports" json:"imports" yaml:"imports"`
	Managers map[string]Packages `toml:"managers" json:"managers" yaml:"managers"`
}

// NewGeneration returns an empty generation with an initialized manager map
func NewGeneration() Generation {
	return Generation{Managers: make(map[string]Packages)}
}

// Merge appends other's imports and, per backend, other's items onto g.
// Backends only present in other are created.
func (g *Generation) Merge(other Generation) {
	if g.Managers == nil {
		g.Managers = make(map[string]Packages)
	}
	g.Imports = slices.Concat(g.Imports, other.Imports)

	for name, pkgs := range other.Managers {
		existing := g.Managers[name]
		g.Managers[name] = Packages{Items: slices.Concat(existing.Items, pkgs.Items)}
	}
}

// Equal reports structural equality over imports and managers.
// Item order matters; a nil list equals an empty one.
func (g Generation) Equal(other Generation) bool {
	if !slices.Equal(g.Imports, other.Imports) {
		return false
	}
	return maps.EqualFunc(g.Managers, other.Managers, func(a, b Packages) bool {
		return slices.Equal(a.Items, b.Items)
	})
}

// ManagerNames returns the backend names in sorted order
func (g Generation) ManagerNames() []string {
	names := make([]string, 0, len(g.Managers))
	for name := range g.Managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items returns the item list for a backend, nil when absent
func (g Generation) Items(manager string) []string {
	return g.Managers[manager].Items
}

// Side selects which generation description the resolver starts from
type Side int

const (
	// SideUser resolves the user's editable configuration
	SideUser Side = iota
	// SideSystem resolves the generation the current pointer refers to
	SideSystem
)

func (s Side) String() string {
	switch s {
	case SideUser:
		return "user"
	case SideSystem:
		return "system"
	default:
		return "unknown"
	}
}
