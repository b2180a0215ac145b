package hostgen

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostgen/pkg/core"
	"github.com/arthur-debert/hostgen/pkg/generations"
	"github.com/arthur-debert/hostgen/pkg/history"
	"github.com/arthur-debert/hostgen/pkg/ui/display"
)

func newGenCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen",
		Short:   MsgGenShort,
		Long:    MsgGenLong,
		GroupID: groupGenerations,
	}

	cmd.AddCommand(
		newCommitCmd(opts),
		newBuildCmd(opts),
		newRollbackCmd(opts),
		newLatestCmd(opts),
		newSetCurrentCmd(opts),
		newGenListCmd(opts),
		newDeleteCmd(opts),
		newDeleteOldCmd(opts),
		newDiffCmd(opts),
		newMaintenanceCmd(opts, "clean-dups", MsgCleanDupsShort, MsgCleanDupsLong),
		newMaintenanceCmd(opts, "align", MsgAlignShort, MsgAlignLong),
		newMaintenanceCmd(opts, "tidy-up", MsgTidyUpShort, ""),
	)
	return cmd
}

func newCommitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: MsgCommitShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			n, err := s.app.Commit(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgCommitted, n))
		},
	}
}

func newBuildCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			result, err := s.app.Build(cmd.Context())
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(buildSummary(result))
		},
	}
}

func newRollbackCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <n>",
		Short: MsgRollbackShort,
		Long:  MsgRollbackLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			n, err := s.app.Rollback(by)
			if err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgCurrentSet, n))
		},
	}
}

func newLatestCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: MsgLatestShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			n, err := s.app.Latest()
			if err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgCurrentSet, n))
		},
	}
}

func newSetCurrentCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-current <n>",
		Short: MsgSetCurrentShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.app.SetCurrent(n); err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgCurrentSet, n))
		},
	}
}

func newGenListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgGenListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := s.app.List()
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(generationList(entries))
		},
	}
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <n>",
		Short: MsgDeleteShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			deleted, err := s.app.Delete(n)
			if err != nil {
				return err
			}
			if !deleted {
				return s.renderer.RenderMessage(fmt.Sprintf(MsgDeleteProtected, n))
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgDeleted, n))
		},
	}
}

func newDeleteOldCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-old <n>",
		Short: MsgDeleteOldShort,
		Long:  MsgDeleteOldLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			deleted, err := s.app.DeleteOld(count)
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(&display.Maintenance{Command: "delete-old", Deleted: deleted})
		},
	}
}

func newDiffCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: MsgDiffShort,
		Long:  MsgDiffLong,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldN, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			newN, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			changes, err := s.app.Diff(oldN, newN)
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(&display.ChangeSet{
				Title:   fmt.Sprintf(MsgChangeSetTitleDiff, oldN, newN),
				Changes: nonNilChanges(changes),
			})
		},
	}
}

// newMaintenanceCmd builds clean-dups, align and tidy-up, which differ only
// in the App method they call.
func newMaintenanceCmd(opts *globalOptions, name, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			result, err := runMaintenance(s.app, name)
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(result)
		},
	}
}

func runMaintenance(app *core.App, name string) (*display.Maintenance, error) {
	result := &display.Maintenance{Command: name}
	var err error
	switch name {
	case "clean-dups":
		result.Deleted, err = app.CleanDups()
	case "align":
		result.Aligned, err = app.Align()
	case "tidy-up":
		result.Deleted, result.Aligned, err = app.TidyUp()
	default:
		return nil, fmt.Errorf("unknown maintenance command %q", name)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func generationList(entries []generations.Entry) *display.GenerationList {
	rows := make([]display.GenerationRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, display.GenerationRow{
			Number:  e.Number,
			Message: e.Message,
			Current: e.IsCurrent,
			Built:   e.IsBuilt,
		})
	}
	return &display.GenerationList{Generations: rows}
}

func buildSummary(result *core.BuildResult) *display.BuildSummary {
	return &display.BuildSummary{
		Generation: result.Generation,
		FirstBuild: result.FirstBuild,
		ChangeSet: display.ChangeSet{
			Title:   MsgChangeSetTitle,
			Changes: nonNilChanges(result.Changes),
		},
	}
}

// nonNilChanges renders an empty change list as [] rather than null
func nonNilChanges(changes []history.Changes) []history.Changes {
	if changes == nil {
		return []history.Changes{}
	}
	return changes
}
