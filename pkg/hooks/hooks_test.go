package hooks

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/execution"
	"github.com/arthur-debert/hostgen/pkg/filesystem"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/arthur-debert/hostgen/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, hooks ...string) (*Runner, *execution.Recorder, types.FS) {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvStoreDir, "")

	p, err := paths.New("/cfg", "/store")
	require.NoError(t, err)
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(p.HooksDir(), 0755))
	for _, h := range hooks {
		require.NoError(t, fsys.WriteFile(p.HookPath(h), []byte("#!/bin/sh\n"), 0755))
	}

	rec := execution.NewRecorder()
	return NewRunner(fsys, p, rec), rec, fsys
}

func TestName(t *testing.T) {
	assert.Equal(t, "pre_apt_install", Name(Pre, "apt", "install"))
	assert.Equal(t, "post_flatpak_remove", Name(Post, "flatpak", "remove"))
	assert.Equal(t, "pre_build", Name(Pre, "", BuildAction))
}

func TestRun(t *testing.T) {
	r, rec, _ := setup(t, "pre_build")

	require.NoError(t, r.Run(context.Background(), "pre_build"))
	require.NoError(t, r.Run(context.Background(), "post_build"))

	assert.Equal(t, []string{"/cfg/hooks/pre_build"}, rec.Recorded())
}

func TestRun_Failure(t *testing.T) {
	r, rec, _ := setup(t, "pre_build")
	rec.FailOn = []string{"pre_build"}

	err := r.Run(context.Background(), "pre_build")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookFailed))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}

func TestRun_InvalidName(t *testing.T) {
	r, _, _ := setup(t)
	err := r.Run(context.Background(), "../escape")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAround(t *testing.T) {
	r, rec, _ := setup(t, "pre_apt_install", "post_apt_install")

	called := false
	err := r.Around(context.Background(), "apt", "install", func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []string{"/cfg/hooks/pre_apt_install", "/cfg/hooks/post_apt_install"}, rec.Recorded())
}

func TestAround_ActionFailureSkipsPost(t *testing.T) {
	r, rec, _ := setup(t, "pre_apt_install", "post_apt_install")

	boom := stderrors.New("boom")
	err := r.Around(context.Background(), "apt", "install", func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"/cfg/hooks/pre_apt_install"}, rec.Recorded())
}
