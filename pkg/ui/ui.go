// Package ui renders command results. Each Format has its own renderer;
// commands hand them the types from package display and never print
// directly.
package ui

import (
	"io"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/ui/json"
	"github.com/arthur-debert/hostgen/pkg/ui/terminal"
	"github.com/arthur-debert/hostgen/pkg/ui/text"
	"github.com/arthur-debert/hostgen/pkg/ui/yaml"
)

// Renderer writes results, errors and messages in one format
type Renderer interface {
	// RenderResult writes one of the display types
	RenderResult(result interface{}) error
	// RenderError writes a failure, including its code for structured formats
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer returns the renderer for format writing to output. An
// automatic format is resolved against output first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format.Resolve(output) {
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

// ErrorOutput picks the stream failures are reported on: structured
// formats keep them on stdout next to results, the others use stderr.
func ErrorOutput(format Format, stdout, stderr io.Writer) io.Writer {
	if format.Structured() {
		return stdout
	}
	return stderr
}
