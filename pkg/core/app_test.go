package core

import (
	"context"
	"testing"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/history"
	"github.com/arthur-debert/hostgen/pkg/lock"
	"github.com/arthur-debert/hostgen/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aptDefinition = `
install = "apt install #:?"
remove = "apt remove #:?"
sync = "apt update"
upgrade = "apt upgrade"
hook_name = "apt"
plural_name = "system packages"
`
	cargoDefinition = `
install = "cargo install #:?"
remove = "cargo uninstall #:?"
plural_name = "crates"

[config]
many_args = false
`
)

type testEnv struct {
	*testutil.TestEnvironment
	app *App
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	env.WriteManager("apt", aptDefinition)
	env.WriteManager("cargo", cargoDefinition)

	app, err := New(Options{
		FS:       env.FS,
		Paths:    env.Paths,
		Hostname: testutil.Hostname,
		Runner:   env.Recorder,
		Token:    lock.Token("self"),
	})
	require.NoError(t, err)
	return &testEnv{TestEnvironment: env, app: app}
}

func (e *testEnv) commit(t *testing.T, content string) int {
	t.Helper()
	e.WriteUserGeneration(content)
	n, err := e.app.Commit("commit")
	require.NoError(t, err)
	return n
}

func (e *testEnv) assertUnlocked(t *testing.T) {
	t.Helper()
	unlocked, err := e.app.IsUnlocked()
	require.NoError(t, err)
	assert.True(t, unlocked, "lock must be released")
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCommit(t *testing.T) {
	env := newTestEnv(t)
	env.WithFileTree(testutil.FileTree{
		"imports": testutil.FileTree{"dev.toml": "[managers.cargo]\nitems = [\"ripgrep\"]\n"},
	})

	n := env.commit(t, "imports = [\"dev\"]\n[managers.apt]\nitems = [\"git\"]\n")
	assert.Equal(t, 1, n)
	env.assertUnlocked(t)

	gen, err := env.app.Store().Get(1)
	require.NoError(t, err)
	assert.Empty(t, gen.Imports, "imports are resolved before storing")
	assert.Equal(t, []string{"git"}, gen.Items("apt"))
	assert.Equal(t, []string{"ripgrep"}, gen.Items("cargo"))

	current, err := env.app.Store().Current()
	require.NoError(t, err)
	assert.Equal(t, 1, current)
}

func TestCommit_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.app.Commit("  ")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCommit_LockHeldByOther(t *testing.T) {
	env := newTestEnv(t)
	env.WriteUserGeneration("[managers.apt]\nitems = [\"git\"]\n")

	other := lock.New(env.FS, env.Paths, lock.Token("other"))
	require.NoError(t, other.Acquire())

	_, err := env.app.Commit("blocked")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLockHeld))

	latest, err := env.app.Store().Latest()
	require.NoError(t, err)
	assert.Equal(t, 0, latest, "nothing is written under a foreign lock")

	owner, err := env.app.LockOwner()
	require.NoError(t, err)
	assert.Equal(t, "other", owner, "a foreign lock is left in place")
}

func TestBuild_FirstBuild(t *testing.T) {
	env := newTestEnv(t)
	env.commit(t, "[managers.apt]\nitems = [\"git\", \"vim\"]\n[managers.cargo]\nitems = [\"bat\", \"fd\"]\n")

	result, err := env.app.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generation)
	assert.True(t, result.FirstBuild)
	assert.Equal(t, []string{
		"apt install git vim",
		"cargo install bat",
		"cargo install fd",
	}, env.Recorder.Recorded())

	built, err := env.app.Store().Built()
	require.NoError(t, err)
	assert.Equal(t, 1, built)
	env.assertUnlocked(t)
}

func TestBuild_Incremental(t *testing.T) {
	env := newTestEnv(t)
	env.commit(t, "[managers.apt]\nitems = [\"git\", \"nano\"]\n[managers.cargo]\nitems = [\"bat\"]\n")
	_, err := env.app.Build(context.Background())
	require.NoError(t, err)
	env.Recorder.Reset()

	env.commit(t, "[managers.apt]\nitems = [\"git\", \"vim\"]\n")
	result, err := env.app.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Generation)
	assert.False(t, result.FirstBuild)
	assert.Equal(t, []history.Changes{
		{Manager: "apt", Entries: history.Entries{
			{Kind: history.Remove, Item: "nano"},
			{Kind: history.Add, Item: "vim"},
		}},
		{Manager: "cargo", Entries: history.Entries{
			{Kind: history.Remove, Item: "bat"},
		}},
	}, result.Changes)
	assert.Equal(t, []string{
		"apt install vim",
		"apt remove nano",
		"cargo uninstall bat",
	}, env.Recorder.Recorded())
}

func TestBuild_NoChanges(t *testing.T) {
	env := newTestEnv(t)
	env.commit(t, "[managers.apt]\nitems = [\"git\"]\n")
	_, err := env.app.Build(context.Background())
	require.NoError(t, err)
	env.Recorder.Reset()

	result, err := env.app.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Empty(t, env.Recorder.Recorded())
}

func TestBuild_Hooks(t *testing.T) {
	env := newTestEnv(t)
	env.AddHook("pre_build")
	env.AddHook("post_build")
	env.AddHook("pre_apt_install")
	env.commit(t, "[managers.apt]\nitems = [\"git\"]\n")

	_, err := env.app.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		env.Paths.HookPath("pre_build"),
		env.Paths.HookPath("pre_apt_install"),
		"apt install git",
		env.Paths.HookPath("post_build"),
	}, env.Recorder.Recorded())
}

func TestBuild_FailureKeepsBuiltPointer(t *testing.T) {
	env := newTestEnv(t)
	env.AddHook("post_build")
	env.commit(t, "[managers.apt]\nitems = [\"git\"]\n")
	_, err := env.app.Build(context.Background())
	require.NoError(t, err)

	env.commit(t, "[managers.apt]\nitems = [\"git\", \"vim\"]\n")
	env.Recorder.Reset()
	env.Recorder.FailOn = []string{"apt install"}

	_, err = env.app.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.NotContains(t, env.Recorder.Recorded(), env.Paths.HookPath("post_build"))

	built, err := env.app.Store().Built()
	require.NoError(t, err)
	assert.Equal(t, 1, built)
	env.assertUnlocked(t)
}

func TestBuild_UnknownManager(t *testing.T) {
	env := newTestEnv(t)
	env.commit(t, "[managers.brew]\nitems = [\"git\"]\n")

	_, err := env.app.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManagerNotFound))

	built, err := env.app.Store().HasBeenBuilt()
	require.NoError(t, err)
	assert.False(t, built)
}

func TestBuild_NoCurrent(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.app.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPointerMissing))
	env.assertUnlocked(t)
}

func TestRollbackLatestSetCurrent(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		env.commit(t, "[managers.apt]\nitems = [\"git\"]\n")
	}

	n, err := env.app.Rollback(2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = env.app.Rollback(1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutOfRange))

	n, err = env.app.Latest()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, env.app.SetCurrent(2))
	current, err := env.app.Store().Current()
	require.NoError(t, err)
	assert.Equal(t, 2, current)

	err = env.app.SetCurrent(4)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutOfRange))
	env.assertUnlocked(t)
}

func TestWithLock_ReleasesOnError(t *testing.T) {
	env := newTestEnv(t)
	err := env.app.WithLock(func() error {
		locked, err := env.app.Lock().IsLocked()
		require.NoError(t, err)
		assert.True(t, locked)
		return errors.New(errors.ErrInternal, "boom")
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
	env.assertUnlocked(t)
}

func TestForceUnlock(t *testing.T) {
	env := newTestEnv(t)
	other := lock.New(env.FS, env.Paths, lock.Token("other"))
	require.NoError(t, other.Acquire())

	unlocked, err := env.app.IsUnlocked()
	require.NoError(t, err)
	assert.False(t, unlocked)

	require.NoError(t, env.app.ForceUnlock())
	env.assertUnlocked(t)
}
