package testutil

import (
	"testing"

	"github.com/arthur-debert/hostgen/pkg/types"
)

// AssertFileExists fails the test when path is not a regular file on fsys.
func AssertFileExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	info, err := fsys.Stat(path)
	if err != nil {
		t.Errorf("File does not exist: %s", path)
		return
	}
	if info.IsDir() {
		t.Errorf("Expected file but found directory: %s", path)
	}
}

// AssertDirExists fails the test when path is not a directory on fsys.
func AssertDirExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	info, err := fsys.Stat(path)
	if err != nil {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected directory but found file: %s", path)
	}
}

// AssertNotExists fails the test when path exists on fsys.
func AssertNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	if _, err := fsys.Stat(path); err == nil {
		t.Errorf("Expected %s to not exist", path)
	}
}
