package hostgen

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostgen/pkg/ui"
)

// Execute runs cmd and returns the process exit code. Failures are
// reported through the renderer for --format, so json and yaml output
// stays parseable; an ExitError only sets the code.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *ExitError
	if stderrors.As(err, &exit) {
		return exit.Code
	}
	reportError(cmd, err)
	return 1
}

func reportError(cmd *cobra.Command, err error) {
	format := ui.FormatText
	if name, flagErr := cmd.PersistentFlags().GetString("format"); flagErr == nil {
		if parsed, parseErr := ui.ParseFormat(name); parseErr == nil {
			format = parsed
		}
	}

	out := ui.ErrorOutput(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	renderer, renderErr := ui.NewRenderer(format, out)
	if renderErr == nil {
		renderErr = renderer.RenderError(err)
	}
	if renderErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
}
