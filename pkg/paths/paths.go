// Package paths provides centralized path handling for hostgen.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for the on-disk layout of the generation
// store and the user configuration.
package paths

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/hostgen/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for hostgen
	EnvConfigDir = "HOSTGEN_CONFIG_DIR"

	// EnvStoreDir overrides the XDG data directory used as the generation store
	EnvStoreDir = "HOSTGEN_STORE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define hostgen's on-disk layout and are NOT
// user-configurable. Generation stores written by one installation must be
// readable by any other.
const (
	// AppDirName is the directory name for hostgen-specific files
	AppDirName = "hostgen"

	// GenerationsDir is the store subdirectory holding numbered generations
	GenerationsDir = "generations"

	// GenerationFileName is the serialized generation inside a record, and
	// the user-level generation file in the config directory
	GenerationFileName = "gen.toml"

	// CommitFileName holds a generation's commit message
	CommitFileName = "commit"

	// CurrentPointerName is the pointer to the generation build applies
	CurrentPointerName = "current"

	// BuiltPointerName is the pointer to the generation last applied
	BuiltPointerName = "built"

	// MachinesDir holds per-hostname overrides
	MachinesDir = "machines"

	// ImportsDir holds named import files
	ImportsDir = "imports"

	// ManagersDir holds package-manager backend definitions
	ManagersDir = "managers"

	// HooksDir holds user hook executables
	HooksDir = "hooks"

	// SettingsFileName is the application settings file in the config directory
	SettingsFileName = "settings.toml"

	// LockFileName is the presence flag of the process lock
	LockFileName = ".lock"

	// LockOwnerFileName records the token of the lock owner
	LockOwnerFileName = ".lock-owner"

	// TomlExt is the extension of import and manager files
	TomlExt = ".toml"
)

// Paths provides centralized path management for hostgen
type Paths interface {
	ConfigDir() string
	StoreDir() string
	GenerationsDir() string
	GenerationDir(n int) string
	GenerationFile(n int) string
	CommitFile(n int) string
	CurrentPointer() string
	BuiltPointer() string
	UserGenerationFile() string
	MachineGenerationFile(hostname string) string
	ImportFile(name string) string
	ManagersDir() string
	ManagerFile(name string) string
	HooksDir() string
	HookPath(name string) string
	SettingsFile() string
	LockFile() string
	LockOwnerFile() string
}

// paths provides centralized path management for hostgen
type paths struct {
	// configDir holds gen.toml, machines/, imports/, managers/, hooks/
	configDir string

	// storeDir holds generations/ and the lock files
	storeDir string
}

// New creates a new Paths instance. Empty arguments are resolved from
// HOSTGEN_CONFIG_DIR / HOSTGEN_STORE_DIR and then from the XDG defaults.
func New(configDir, storeDir string) (Paths, error) {
	p := &paths{
		configDir: ResolveConfigDir(configDir),
		storeDir:  resolveStoreDir(storeDir),
	}

	for _, dir := range []*string{&p.configDir, &p.storeDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// ResolveConfigDir returns the config directory: explicit value, then
// HOSTGEN_CONFIG_DIR, then $XDG_CONFIG_HOME/hostgen.
func ResolveConfigDir(explicit string) string {
	if explicit != "" {
		return expandHome(explicit)
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

func resolveStoreDir(explicit string) string {
	if dir := os.Getenv(EnvStoreDir); dir != "" {
		return expandHome(dir)
	}
	if explicit != "" {
		return expandHome(explicit)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) StoreDir() string { return p.storeDir }

func (p *paths) GenerationsDir() string {
	return filepath.Join(p.storeDir, GenerationsDir)
}

func (p *paths) GenerationDir(n int) string {
	return filepath.Join(p.GenerationsDir(), strconv.Itoa(n))
}

func (p *paths) GenerationFile(n int) string {
	return filepath.Join(p.GenerationDir(n), GenerationFileName)
}

func (p *paths) CommitFile(n int) string {
	return filepath.Join(p.GenerationDir(n), CommitFileName)
}

func (p *paths) CurrentPointer() string {
	return filepath.Join(p.GenerationsDir(), CurrentPointerName)
}

func (p *paths) BuiltPointer() string {
	return filepath.Join(p.GenerationsDir(), BuiltPointerName)
}

func (p *paths) UserGenerationFile() string {
	return filepath.Join(p.configDir, GenerationFileName)
}

func (p *paths) MachineGenerationFile(hostname string) string {
	return filepath.Join(p.configDir, MachinesDir, hostname, GenerationFileName)
}

func (p *paths) ImportFile(name string) string {
	return filepath.Join(p.configDir, ImportsDir, name+TomlExt)
}

func (p *paths) ManagersDir() string {
	return filepath.Join(p.configDir, ManagersDir)
}

func (p *paths) ManagerFile(name string) string {
	return filepath.Join(p.ManagersDir(), name+TomlExt)
}

func (p *paths) HooksDir() string {
	return filepath.Join(p.configDir, HooksDir)
}

func (p *paths) HookPath(name string) string {
	return filepath.Join(p.HooksDir(), name)
}

func (p *paths) SettingsFile() string {
	return filepath.Join(p.configDir, SettingsFileName)
}

func (p *paths) LockFile() string {
	return filepath.Join(p.storeDir, LockFileName)
}

func (p *paths) LockOwnerFile() string {
	return filepath.Join(p.storeDir, LockOwnerFileName)
}
