package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/filesystem"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
)

const (
	ConfigDir = "/virtual/config"
	StoreDir  = "/virtual/store"
	Hostname  = "testhost"
)

// TestEnvironment is a memory-backed hostgen layout.
type TestEnvironment struct {
	FS       types.FS
	Paths    paths.Paths
	Recorder *execution.Recorder

	t *testing.T
}

// FileTree describes files (string values) and directories (nested
// FileTree values) relative to the configuration directory.
type FileTree map[string]interface{}

// NewTestEnvironment creates the configuration, managers, hooks and store
// directories on a fresh memory filesystem. Directory overrides from the
// environment are cleared for the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvStoreDir, "")

	p, err := paths.New(ConfigDir, StoreDir)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env := &TestEnvironment{
		FS:       filesystem.NewMemory(),
		Paths:    p,
		Recorder: execution.NewRecorder(),
		t:        t,
	}
	for _, dir := range []string{p.ManagersDir(), p.HooksDir(), p.GenerationsDir()} {
		env.mkdir(dir)
	}
	return env
}

// WithFileTree creates tree under the configuration directory.
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Paths.ConfigDir(), tree)
}

// WriteUserGeneration replaces the user generation file.
func (env *TestEnvironment) WriteUserGeneration(content string) {
	env.t.Helper()
	env.writeFile(env.Paths.UserGenerationFile(), content, 0644)
}

// WriteManager writes a manager definition.
func (env *TestEnvironment) WriteManager(name, content string) {
	env.t.Helper()
	env.writeFile(env.Paths.ManagerFile(name), content, 0644)
}

// AddHook installs an executable hook script and returns its path.
func (env *TestEnvironment) AddHook(name string) string {
	env.t.Helper()
	path := env.Paths.HookPath(name)
	env.writeFile(path, "#!/bin/sh\n", 0755)
	return path
}

// ReadFile returns the content of path, failing the test if it is missing.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func (env *TestEnvironment) mkdir(dir string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(dir, 0755); err != nil {
		env.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
}

func (env *TestEnvironment) writeFile(path, content string, perm fs.FileMode) {
	env.t.Helper()
	env.mkdir(filepath.Dir(path))
	if err := env.FS.WriteFile(path, []byte(content), perm); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func createFileTree(t *testing.T, fsys types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fsys.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fsys.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fsys.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fsys, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
