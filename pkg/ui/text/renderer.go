// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.GenerationList:
		return r.renderGenerations(v)
	case *display.ChangeSet:
		return r.renderChangeSet(v)
	case *display.BuildSummary:
		return r.renderBuild(v)
	case *display.Maintenance:
		return r.println(MaintenanceLine(v))
	case *display.ManagerList:
		return r.renderManagers(v)
	case *display.LockStatus:
		return r.println(LockLine(v))
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

func (r *Renderer) renderGenerations(list *display.GenerationList) error {
	if len(list.Generations) == 0 {
		return r.println("No generations.")
	}
	for _, g := range list.Generations {
		line := fmt.Sprintf("%4d  %s", g.Number, g.Message)
		if tags := Tags(g); tags != "" {
			line += "  " + tags
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderChangeSet(cs *display.ChangeSet) error {
	if cs.Title != "" {
		if err := r.println(cs.Title); err != nil {
			return err
		}
	}
	if len(cs.Changes) == 0 {
		return r.println("No changes.")
	}
	for _, c := range cs.Changes {
		if err := r.println(c.Manager + ":"); err != nil {
			return err
		}
		for _, e := range c.Entries {
			if err := r.println(fmt.Sprintf("  %s %s", e.Kind.Symbol(), e.Item)); err != nil {
				return err
			}
		}
	}
	adds, removes := cs.Counts()
	return r.println(fmt.Sprintf("%d to add, %d to remove", adds, removes))
}

func (r *Renderer) renderBuild(b *display.BuildSummary) error {
	if err := r.renderChangeSet(&b.ChangeSet); err != nil {
		return err
	}
	return r.println(BuildLine(b))
}

func (r *Renderer) renderManagers(list *display.ManagerList) error {
	if len(list.Managers) == 0 {
		return r.println("No package managers defined.")
	}
	for _, m := range list.Managers {
		if err := r.println(ManagerLine(m)); err != nil {
			return err
		}
	}
	return nil
}

// Tags renders the pointer markers of a generation row
func Tags(g display.GenerationRow) string {
	var tags []string
	if g.Current {
		tags = append(tags, "[current]")
	}
	if g.Built {
		tags = append(tags, "[built]")
	}
	return strings.Join(tags, " ")
}

// BuildLine summarizes a build
func BuildLine(b *display.BuildSummary) string {
	if b.FirstBuild {
		return fmt.Sprintf("Built generation %d (first build)", b.Generation)
	}
	return fmt.Sprintf("Built generation %d", b.Generation)
}

// MaintenanceLine summarizes a maintenance command
func MaintenanceLine(m *display.Maintenance) string {
	switch m.Command {
	case "clean-dups":
		return fmt.Sprintf("Deleted %d duplicate generations", m.Deleted)
	case "align":
		return fmt.Sprintf("Aligned %d generations", m.Aligned)
	case "tidy-up":
		return fmt.Sprintf("Deleted %d duplicate generations, aligned %d generations", m.Deleted, m.Aligned)
	default:
		return fmt.Sprintf("Deleted %d generations", m.Deleted)
	}
}

// ManagerLine describes one backend
func ManagerLine(m display.ManagerRow) string {
	if m.Error != "" {
		return fmt.Sprintf("%s  invalid: %s", m.Name, m.Error)
	}
	var ops []string
	ops = append(ops, "install", "remove")
	if m.HasSync {
		ops = append(ops, "sync")
	}
	if m.HasUpgrade {
		ops = append(ops, "upgrade")
	}
	mode := "one item per call"
	if m.ManyArgs {
		mode = "all items in one call"
	}
	return fmt.Sprintf("%s  (%s)  hooks: %s  ops: %s  %s",
		m.Name, m.PluralName, m.HookName, strings.Join(ops, ","), mode)
}

// LockLine describes the lock state
func LockLine(l *display.LockStatus) string {
	if !l.Locked {
		return "Unlocked"
	}
	if l.Owner == "" {
		return "Locked (no owner recorded)"
	}
	return "Locked by " + l.Owner
}
