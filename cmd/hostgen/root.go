// Package hostgen implements the hostgen command line.
package hostgen

import (
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostgen/internal/version"
	"github.com/arthur-debert/hostgen/pkg/logging"
)

// Command group IDs
const (
	groupGenerations = "generations"
	groupSystem      = "system"
	groupMisc        = "misc"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	format    string
	configDir string
}

// ExitError ends the process with Code without printing anything
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "hostgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return stderrors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", MsgFlagConfigDir)

	rootCmd.AddGroup(
		&cobra.Group{ID: groupGenerations, Title: "GENERATIONS:"},
		&cobra.Group{ID: groupSystem, Title: "SYSTEM:"},
		&cobra.Group{ID: groupMisc, Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenCmd(opts))
	rootCmd.AddCommand(newManagersCmd(opts))
	rootCmd.AddCommand(newForceUnlockCmd(opts))
	rootCmd.AddCommand(newIsUnlockedCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}
