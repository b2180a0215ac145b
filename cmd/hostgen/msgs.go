package hostgen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Generation-based package configuration for this host"
	MsgGenShort           = "Manage generations"
	MsgCommitShort        = "Snapshot the configuration as a new current generation"
	MsgBuildShort         = "Reconcile the host with the current generation"
	MsgRollbackShort      = "Move current back by n generations"
	MsgLatestShort        = "Point current at the newest generation"
	MsgSetCurrentShort    = "Point current at generation n"
	MsgGenListShort       = "List generations"
	MsgDeleteShort        = "Delete generation n"
	MsgDeleteOldShort     = "Delete the n oldest generations"
	MsgDiffShort          = "Show what changes between two generations"
	MsgCleanDupsShort     = "Delete generations identical to their predecessor"
	MsgAlignShort         = "Renumber generations from 1 without gaps"
	MsgTidyUpShort        = "Run clean-dups then align"
	MsgManagersShort      = "Work with package-manager backends"
	MsgSyncShort          = "Refresh the index of every backend"
	MsgUpgradeShort       = "Upgrade everything every backend manages"
	MsgManagersListShort  = "List backend definitions"
	MsgForceUnlockShort   = "Remove the store lock whoever holds it"
	MsgIsUnlockedShort    = "Exit 0 when the store is unlocked, 1 otherwise"
	MsgConfigShort        = "Manage the user configuration"
	MsgConfigInitShort    = "Create a starter configuration"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"
	MsgIsUnlockedLong     = "Reports the lock state and exits 0 when the store is unlocked, 1 when it is locked."
	MsgUpgradeLong        = "Run the upgrade command of every backend, in name order. Backends without one are skipped."
	MsgSyncLong           = "Run the sync command of every backend, in name order. Backends without one are skipped."
	MsgRollbackLong       = "Move the current pointer back by n generations. Nothing is installed until the next build."
	MsgDeleteOldLong      = "Delete up to n generations starting from the oldest. The current and built generations are skipped but count towards n."
	MsgDiffLong           = "Show the items added and removed per backend when going from generation <old> to generation <new>."
	MsgCleanDupsLong      = "Delete every generation equal to the one kept just before it. Pointers at a deleted duplicate move to the kept one."
	MsgAlignLong          = "Renumber generations densely from 1 in their current order. Pointers follow their generation."
	MsgChangeSetTitleDiff = "Generation %d to %d"
	MsgChangeSetTitle     = "Changes"

	// Status messages
	MsgCommitted          = "Committed generation %d"
	MsgCurrentSet         = "Current generation is now %d"
	MsgDeleted            = "Deleted generation %d"
	MsgDeleteProtected    = "Generation %d is current or built, not deleted"
	MsgSynced             = "Synced all backends"
	MsgUpgraded           = "Upgraded all backends"
	MsgNotLocked          = "The store is not locked"
	MsgUnlocked           = "Lock removed"
	MsgLockWarning        = "The store is locked by %s. Removing the lock while that process runs can corrupt the store."
	MsgLockWarningNoOwner = "The store is locked with no recorded owner."
	MsgUnlockQuestion     = "Remove the lock anyway?"
	MsgUnlockCountdown    = "Removing the lock"
	MsgFileCreated        = "Created %s"
	MsgVersionFormat      = "hostgen version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrBadNumber    = "%q is not a number"
	MsgErrUnlockDenied = "force-unlock cancelled"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term, text, json or yaml"
	MsgFlagConfigDir = "Configuration directory (default $XDG_CONFIG_HOME/hostgen)"
	MsgFlagYes       = "Do not ask for confirmation"
	MsgFlagForce     = "Replace an existing configuration"
	MsgFlagSync      = "Sync every backend before upgrading"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/gen-long.txt
	msgGenLongRaw string
	MsgGenLong    = strings.TrimSpace(msgGenLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/force-unlock-long.txt
	msgForceUnlockLongRaw string
	MsgForceUnlockLong    = strings.TrimSpace(msgForceUnlockLongRaw)

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
