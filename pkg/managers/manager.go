package managers

import (
	"context"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/hooks"
	"github.com/arthur-debert/hostgen/pkg/logging"
)

// Action names, also used in hook names
const (
	ActionInstall = "install"
	ActionRemove  = "remove"
	ActionSync    = "sync"
	ActionUpgrade = "upgrade"
)

// Manager is a loaded backend bound to a shell runner and hooks
type Manager struct {
	Name       string
	Definition Definition

	runner execution.Runner
	hooks  *hooks.Runner
}

// Install installs items. Empty or all-blank input is a no-op.
func (m *Manager) Install(ctx context.Context, items []string) error {
	return m.applyItems(ctx, ActionInstall, m.Definition.Install, items)
}

// Remove removes items. Empty or all-blank input is a no-op.
func (m *Manager) Remove(ctx context.Context, items []string) error {
	return m.applyItems(ctx, ActionRemove, m.Definition.Remove, items)
}

// Sync refreshes the backend's index. No-op without a sync command.
func (m *Manager) Sync(ctx context.Context) error {
	return m.applyPlain(ctx, ActionSync, m.Definition.Sync)
}

// Upgrade upgrades everything the backend manages. No-op without an
// upgrade command.
func (m *Manager) Upgrade(ctx context.Context) error {
	return m.applyPlain(ctx, ActionUpgrade, m.Definition.Upgrade)
}

func (m *Manager) applyItems(ctx context.Context, action, template string, items []string) error {
	logger := logging.GetLogger("managers").With().Str("manager", m.Name).Str("action", action).Logger()

	nonBlank := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			nonBlank = append(nonBlank, item)
		}
	}
	if len(nonBlank) == 0 {
		logger.Debug().Msg("Nothing to do")
		return nil
	}

	logger.Info().Int("count", len(nonBlank)).Msgf("Running %s for %s", action, m.Definition.PluralName)
	return m.run(ctx, action, m.Definition.Commands(template, nonBlank))
}

func (m *Manager) applyPlain(ctx context.Context, action, command string) error {
	logger := logging.GetLogger("managers").With().Str("manager", m.Name).Str("action", action).Logger()

	if strings.TrimSpace(command) == "" {
		logger.Debug().Msg("No command configured, skipping")
		return nil
	}

	logger.Info().Msgf("Running %s for %s", action, m.Definition.PluralName)
	return m.run(ctx, action, []string{command})
}

func (m *Manager) run(ctx context.Context, action string, commands []string) error {
	err := m.hooks.Around(ctx, m.Definition.HookName, action, func() error {
		for _, command := range commands {
			if err := m.runner.Run(ctx, command); err != nil {
				return errors.Wrapf(err, errors.ErrCommandFailed, "failed to %s %s", action, m.Definition.PluralName).
					WithDetails(map[string]interface{}{"manager": m.Name, "action": action})
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger := logging.GetLogger("managers")
	logger.Info().
		Str("manager", m.Name).
		Str("action", action).
		Msgf("Successfully ran %s for %s", action, m.Definition.PluralName)
	return nil
}
