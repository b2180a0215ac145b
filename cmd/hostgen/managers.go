package hostgen

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostgen/pkg/core"
	"github.com/arthur-debert/hostgen/pkg/ui/display"
)

func newManagersCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "managers",
		Short:   MsgManagersShort,
		GroupID: groupSystem,
	}
	cmd.AddCommand(newSyncCmd(opts), newUpgradeCmd(opts), newManagersListCmd(opts))
	return cmd
}

func newSyncCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: MsgSyncShort,
		Long:  MsgSyncLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.app.Sync(cmd.Context()); err != nil {
				return err
			}
			return s.renderer.RenderMessage(MsgSynced)
		},
	}
}

func newUpgradeCmd(opts *globalOptions) *cobra.Command {
	var sync bool
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: MsgUpgradeShort,
		Long:  MsgUpgradeLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.app.Upgrade(cmd.Context(), sync); err != nil {
				return err
			}
			return s.renderer.RenderMessage(MsgUpgraded)
		},
	}
	cmd.Flags().BoolVar(&sync, "sync", false, MsgFlagSync)
	return cmd
}

func newManagersListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgManagersListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			infos, err := s.app.Managers()
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(managerList(infos))
		},
	}
}

func managerList(infos []core.ManagerInfo) *display.ManagerList {
	rows := make([]display.ManagerRow, 0, len(infos))
	for _, info := range infos {
		row := display.ManagerRow{Name: info.Name}
		if info.Err != nil {
			row.Error = info.Err.Error()
			rows = append(rows, row)
			continue
		}
		d := info.Definition
		row.PluralName = d.PluralName
		row.HookName = d.HookName
		row.ManyArgs = d.Config.ManyArgs
		row.HasSync = d.Sync != ""
		row.HasUpgrade = d.Upgrade != ""
		rows = append(rows, row)
	}
	return &display.ManagerList{Managers: rows}
}
