package hostgen

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/ui/confirmations"
	"github.com/arthur-debert/hostgen/pkg/ui/display"
)

func newForceUnlockCmd(opts *globalOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "force-unlock",
		Short:   MsgForceUnlockShort,
		Long:    MsgForceUnlockLong,
		GroupID: groupSystem,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			unlocked, err := s.app.IsUnlocked()
			if err != nil {
				return err
			}
			if unlocked {
				return s.renderer.RenderMessage(MsgNotLocked)
			}
			owner, err := s.app.LockOwner()
			if err != nil {
				return err
			}

			dialog := confirmations.NewConsoleDialog(cmd.InOrStdin(), cmd.ErrOrStderr())
			if owner == "" {
				dialog.Warn(MsgLockWarningNoOwner)
			} else {
				dialog.Warn(fmt.Sprintf(MsgLockWarning, owner))
			}

			if !yes {
				ok, err := dialog.Confirm(MsgUnlockQuestion, false)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New(errors.ErrAborted, MsgErrUnlockDenied)
				}
			}
			if err := dialog.Countdown(cmd.Context(), s.settings.UnlockCountdown, MsgUnlockCountdown); err != nil {
				return err
			}

			if err := s.app.ForceUnlock(); err != nil {
				return err
			}
			return s.renderer.RenderMessage(MsgUnlocked)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newIsUnlockedCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "is-unlocked",
		Short:   MsgIsUnlockedShort,
		Long:    MsgIsUnlockedLong,
		GroupID: groupSystem,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			unlocked, err := s.app.IsUnlocked()
			if err != nil {
				return err
			}
			status := &display.LockStatus{Locked: !unlocked}
			if !unlocked {
				if status.Owner, err = s.app.LockOwner(); err != nil {
					return err
				}
			}
			if err := s.renderer.RenderResult(status); err != nil {
				return err
			}
			if !unlocked {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}
