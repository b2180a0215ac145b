// Package history computes the difference between two item lists, and
// between two generations backend by backend. Everything here is pure.
package history

import (
	"slices"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/types"
)

// Kind is the direction of a change
type Kind int

const (
	// Remove marks an item present before and absent after
	Remove Kind = iota
	// Add marks an item absent before and present after
	Add
)

func (k Kind) String() string {
	if k == Add {
		return "add"
	}
	return "remove"
}

// Symbol returns the diff prefix for the kind
func (k Kind) Symbol() string {
	if k == Add {
		return "+"
	}
	return "-"
}

// MarshalText renders the kind by name in json and yaml output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one item-level change
type Entry struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Item string `json:"item" yaml:"item"`
}

// Entries is an ordered list of changes for one backend
type Entries []Entry

// Split partitions the entries into items to add and items to remove,
// preserving order.
func (e Entries) Split() (adds, removes []string) {
	for _, entry := range e {
		switch entry.Kind {
		case Add:
			adds = append(adds, entry.Item)
		case Remove:
			removes = append(removes, entry.Item)
		}
	}
	return adds, removes
}

// Changes groups the entries of one backend
type Changes struct {
	Manager string  `json:"manager" yaml:"manager"`
	Entries Entries `json:"entries" yaml:"entries"`
}

// Dedup trims items, drops blanks and keeps the first occurrence of each.
func Dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Between returns the removes (in before order) followed by the adds (in
// after order). Items present in both lists are omitted.
func Between(before, after []string) Entries {
	before = Dedup(before)
	after = Dedup(after)

	var entries Entries
	for _, item := range before {
		if !slices.Contains(after, item) {
			entries = append(entries, Entry{Kind: Remove, Item: item})
		}
	}
	for _, item := range after {
		if !slices.Contains(before, item) {
			entries = append(entries, Entry{Kind: Add, Item: item})
		}
	}
	return entries
}

// Compare diffs two generations over the union of their backends, sorted
// by backend name. Backends without changes are omitted. A backend only in
// before yields removals of all its items, one only in after yields adds.
func Compare(before, after types.Generation) []Changes {
	names := make([]string, 0, len(before.Managers)+len(after.Managers))
	names = append(names, before.ManagerNames()...)
	names = append(names, after.ManagerNames()...)
	slices.Sort(names)
	names = slices.Compact(names)

	var out []Changes
	for _, name := range names {
		entries := Between(before.Items(name), after.Items(name))
		if len(entries) == 0 {
			continue
		}
		out = append(out, Changes{Manager: name, Entries: entries})
	}
	return out
}

// Count returns the number of adds and removes across all changes
func Count(changes []Changes) (adds, removes int) {
	for _, c := range changes {
		a, r := c.Entries.Split()
		adds += len(a)
		removes += len(r)
	}
	return adds, removes
}
