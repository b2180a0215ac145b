// Package display defines the result types commands hand to renderers.
// Every renderer (terminal, text, json, yaml) knows how to draw them.
package display

import (
	"github.com/arthur-debert/hostgen/pkg/history"
)

// GenerationRow is one line of a generation listing
type GenerationRow struct {
	Number  int    `json:"number" yaml:"number"`
	Message string `json:"message" yaml:"message"`
	Current bool   `json:"current" yaml:"current"`
	Built   bool   `json:"built" yaml:"built"`
}

// GenerationList is the result of `gen list`
type GenerationList struct {
	Generations []GenerationRow `json:"generations" yaml:"generations"`
}

// ChangeSet shows per-backend changes, for `gen diff` and `gen build`
type ChangeSet struct {
	Title   string            `json:"title" yaml:"title"`
	Changes []history.Changes `json:"changes" yaml:"changes"`
}

// Counts returns the number of adds and removes in the set
func (c *ChangeSet) Counts() (adds, removes int) {
	return history.Count(c.Changes)
}

// BuildSummary is the result of `gen build`
type BuildSummary struct {
	Generation int       `json:"generation" yaml:"generation"`
	FirstBuild bool      `json:"firstBuild" yaml:"firstBuild"`
	ChangeSet  ChangeSet `json:"changeSet" yaml:"changeSet"`
}

// Maintenance is the result of clean-dups, align, tidy-up and delete-old
type Maintenance struct {
	Command string `json:"command" yaml:"command"`
	Deleted int    `json:"deleted" yaml:"deleted"`
	Aligned int    `json:"aligned" yaml:"aligned"`
}

// ManagerRow describes one backend definition
type ManagerRow struct {
	Name       string `json:"name" yaml:"name"`
	PluralName string `json:"pluralName" yaml:"pluralName"`
	HookName   string `json:"hookName" yaml:"hookName"`
	ManyArgs   bool   `json:"manyArgs" yaml:"manyArgs"`
	HasSync    bool   `json:"hasSync" yaml:"hasSync"`
	HasUpgrade bool   `json:"hasUpgrade" yaml:"hasUpgrade"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ManagerList is the result of `managers list`
type ManagerList struct {
	Managers []ManagerRow `json:"managers" yaml:"managers"`
}

// LockStatus is the result of `is-unlocked`
type LockStatus struct {
	Locked bool   `json:"locked" yaml:"locked"`
	Owner  string `json:"owner,omitempty" yaml:"owner,omitempty"`
}
