package hostgen

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostgen/pkg/config"
	"github.com/arthur-debert/hostgen/pkg/core"
	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/filesystem"
	"github.com/arthur-debert/hostgen/pkg/lock"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/ui"
)

// session is everything a command needs, built from the global flags
type session struct {
	app      *core.App
	settings *config.Settings
	renderer ui.Renderer
}

func newSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	logger := logging.GetLogger("cmd")

	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	configDir := paths.ResolveConfigDir(opts.configDir)
	settings, err := config.LoadSettings(configDir)
	if err != nil {
		return nil, err
	}
	p, err := paths.New(configDir, settings.StoreDir)
	if err != nil {
		return nil, err
	}
	hostname, err := settings.ResolvedHostname()
	if err != nil {
		return nil, err
	}

	runner := execution.NewShellRunner(settings.Shell)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = commandOutput(cmd, format)
	runner.Stderr = cmd.ErrOrStderr()

	app, err := core.New(core.Options{
		FS:       filesystem.NewOS(),
		Paths:    p,
		Hostname: hostname,
		Runner:   runner,
		Token:    lock.NewToken(),
		Verbose:  opts.verbosity > 0,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("config_dir", p.ConfigDir()).
		Str("store_dir", p.StoreDir()).
		Str("format", format.String()).
		Msg("Session ready")

	return &session{app: app, settings: settings, renderer: renderer}, nil
}

// commandOutput keeps machine-readable stdout free of backend output
func commandOutput(cmd *cobra.Command, format ui.Format) io.Writer {
	if format.Structured() {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// parseNumber parses a generation number or count argument
func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Newf(errors.ErrInvalidInput, MsgErrBadNumber, arg)
	}
	return n, nil
}
