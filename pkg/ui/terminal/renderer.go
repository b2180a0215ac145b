// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/history"
	"github.com/arthur-debert/hostgen/pkg/ui/display"
	"github.com/arthur-debert/hostgen/pkg/ui/text"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.GenerationList:
		return r.write(r.generations(v))
	case *display.ChangeSet:
		return r.write(r.changeSet(v))
	case *display.BuildSummary:
		return r.write(r.changeSet(&v.ChangeSet) + "\n" + builtStyle.Render(text.BuildLine(v)))
	case *display.Maintenance:
		return r.write(text.MaintenanceLine(v))
	case *display.ManagerList:
		return r.write(r.managers(v))
	case *display.LockStatus:
		if v.Locked {
			return r.write(warningStyle.Render(text.LockLine(v)))
		}
		return r.write(builtStyle.Render(text.LockLine(v)))
	default:
		return r.write(fmt.Sprintf("%+v", result))
	}
}

// RenderError renders an error with styling
func (r *Renderer) RenderError(err error) error {
	return r.write(errorStyle.Render("Error:") + " " + err.Error())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(msg)
}

func (r *Renderer) write(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

func (r *Renderer) generations(list *display.GenerationList) string {
	if len(list.Generations) == 0 {
		return mutedStyle.Render("No generations.")
	}
	lines := make([]string, 0, len(list.Generations))
	for _, g := range list.Generations {
		line := numberStyle.Render(fmt.Sprint(g.Number)) + "  " + g.Message
		if g.Current {
			line += "  " + currentStyle.Render("current")
		}
		if g.Built {
			line += "  " + builtStyle.Render("built")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) changeSet(cs *display.ChangeSet) string {
	var b strings.Builder
	if cs.Title != "" {
		b.WriteString(titleStyle.Render(cs.Title))
		b.WriteString("\n")
	}
	if len(cs.Changes) == 0 {
		b.WriteString(mutedStyle.Render("No changes."))
		return b.String()
	}
	for _, c := range cs.Changes {
		b.WriteString(managerStyle.Render(c.Manager))
		b.WriteString("\n")
		for _, e := range c.Entries {
			style := addStyle
			if e.Kind == history.Remove {
				style = removeStyle
			}
			b.WriteString(itemIndent.Render(style.Render(e.Kind.Symbol() + " " + e.Item)))
			b.WriteString("\n")
		}
	}
	adds, removes := cs.Counts()
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d to add, %d to remove", adds, removes)))
	return b.String()
}

func (r *Renderer) managers(list *display.ManagerList) string {
	if len(list.Managers) == 0 {
		return mutedStyle.Render("No package managers defined.")
	}
	lines := make([]string, 0, len(list.Managers))
	for _, m := range list.Managers {
		if m.Error != "" {
			lines = append(lines, managerStyle.Render(m.Name)+"  "+errorStyle.Render("invalid: ")+m.Error)
			continue
		}
		details := strings.TrimPrefix(text.ManagerLine(m), m.Name+"  ")
		lines = append(lines, managerStyle.Render(m.Name)+"  "+mutedStyle.Render(details))
	}
	return strings.Join(lines, "\n")
}
