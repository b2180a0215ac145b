package hostgen

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echoDefinition = `
install = "echo installing #:?"
remove = "echo removing #:?"
upgrade = "echo upgrading"
plural_name = "things"
`

type cliEnv struct {
	configDir string
	storeDir  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{
		configDir: filepath.Join(root, "config"),
		storeDir:  filepath.Join(root, "store"),
	}
	t.Setenv("HOSTGEN_CONFIG_DIR", env.configDir)
	t.Setenv("HOSTGEN_STORE_DIR", env.storeDir)
	t.Setenv("HOSTGEN_HOSTNAME", "testhost")
	t.Setenv("HOSTGEN_UNLOCK_COUNTDOWN", "0")
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return env
}

// run executes the root command with args and returns its stdout
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// execute runs args through Execute and returns the exit code and both streams
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	code := Execute(context.Background(), cmd)
	return code, out.String(), errOut.String()
}

func (e *cliEnv) writeConfig(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(e.configDir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (e *cliEnv) setUp(t *testing.T) {
	t.Helper()
	_, err := run(t, "", "config", "init")
	require.NoError(t, err)
	e.writeConfig(t, "managers/echoer.toml", echoDefinition)
}

func TestRoot_NoCommand(t *testing.T) {
	newCLIEnv(t)
	_, err := run(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgErrNoCommand)
}

func TestConfigInit(t *testing.T) {
	env := newCLIEnv(t)

	out, err := run(t, "", "config", "init", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(env.configDir, "gen.toml"))
	assert.Contains(t, out, filepath.Join(env.configDir, "managers", "system.toml"))

	_, err = run(t, "", "config", "init")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	_, err = run(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestCommitBuildCycle(t *testing.T) {
	env := newCLIEnv(t)
	env.setUp(t)

	env.writeConfig(t, "gen.toml", "[managers.echoer]\nitems = [\"git\", \"vim\"]\n")
	out, err := run(t, "", "gen", "commit", "first", "commit", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Committed generation 1\n", out)

	out, err = run(t, "", "gen", "build", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "installing git vim")
	assert.Contains(t, out, "  + git")
	assert.Contains(t, out, "Built generation 1 (first build)")

	env.writeConfig(t, "gen.toml", "[managers.echoer]\nitems = [\"git\"]\n")
	_, err = run(t, "", "gen", "commit", "drop vim")
	require.NoError(t, err)

	out, err = run(t, "", "gen", "diff", "1", "2", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Generation 1 to 2")
	assert.Contains(t, out, "  - vim")

	out, err = run(t, "", "gen", "build", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "removing vim")
	assert.Contains(t, out, "Built generation 2\n")

	out, err = run(t, "", "gen", "list", "--format", "json")
	require.NoError(t, err)
	var list display.GenerationList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Generations, 2)
	assert.Equal(t, "first commit", list.Generations[0].Message)
	assert.True(t, list.Generations[1].Current)
	assert.True(t, list.Generations[1].Built)

	out, err = run(t, "", "gen", "rollback", "1", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Current generation is now 1\n", out)

	out, err = run(t, "", "gen", "build", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "installing vim")
}

func TestGen_BadNumber(t *testing.T) {
	newCLIEnv(t)
	_, err := run(t, "", "gen", "set-current", "two")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGen_Maintenance(t *testing.T) {
	env := newCLIEnv(t)
	env.setUp(t)
	env.writeConfig(t, "gen.toml", "[managers.echoer]\nitems = [\"git\"]\n")
	for i := 0; i < 3; i++ {
		_, err := run(t, "", "gen", "commit", "same")
		require.NoError(t, err)
	}

	out, err := run(t, "", "gen", "tidy-up", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 2 duplicate generations, aligned 0 generations\n", out)

	out, err = run(t, "", "gen", "delete", "1", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Generation 1 is current or built, not deleted\n", out)
}

func TestManagers(t *testing.T) {
	env := newCLIEnv(t)
	env.setUp(t)

	out, err := run(t, "", "managers", "list", "--format", "json")
	require.NoError(t, err)
	var list display.ManagerList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Managers, 2)
	assert.Equal(t, "echoer", list.Managers[0].Name)
	assert.True(t, list.Managers[0].HasUpgrade)
	assert.False(t, list.Managers[0].HasSync)
	assert.Equal(t, "system", list.Managers[1].Name)

	// only the echo backend may run here
	require.NoError(t, os.Remove(filepath.Join(env.configDir, "managers", "system.toml")))
	out, err = run(t, "", "managers", "upgrade", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "upgrading\n"+MsgUpgraded+"\n", out)
}

func TestLockCommands(t *testing.T) {
	env := newCLIEnv(t)

	out, err := run(t, "", "is-unlocked", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Unlocked\n", out)

	require.NoError(t, os.MkdirAll(env.storeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.storeDir, ".lock"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(env.storeDir, ".lock-owner"), []byte("someone"), 0644))

	out, err = run(t, "", "is-unlocked", "--format", "text")
	require.Error(t, err)
	var exit *ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.Code)
	assert.Equal(t, "Locked by someone\n", out)

	_, err = run(t, "", "gen", "commit", "blocked")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLockHeld))

	_, err = run(t, "n\n", "force-unlock")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))

	out, err = run(t, "y\n", "force-unlock", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, MsgUnlocked+"\n", out)

	out, err = run(t, "", "force-unlock", "--yes", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, MsgNotLocked+"\n", out)
}

func TestVersion(t *testing.T) {
	newCLIEnv(t)
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hostgen version dev")
}

func TestCompletion(t *testing.T) {
	newCLIEnv(t)
	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "hostgen")
}

func TestExecute_StructuredErrors(t *testing.T) {
	env := newCLIEnv(t)
	env.setUp(t)
	env.writeConfig(t, "gen.toml", "[managers.echoer]\nitems = [\"git\"]\n")
	_, err := run(t, "", "gen", "commit", "first")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		code, out, _ := execute(t, "gen", "set-current", "99", "--format", "json")
		assert.Equal(t, 1, code)

		var doc struct {
			Error   string                 `json:"error"`
			Code    string                 `json:"code"`
			Details map[string]interface{} `json:"details"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc), "stdout must be one JSON document: %q", out)
		assert.Equal(t, "OUT_OF_RANGE", doc.Code)
		assert.Contains(t, doc.Error, "out of range")
		assert.EqualValues(t, 99, doc.Details["generation"])
	})

	t.Run("text", func(t *testing.T) {
		code, out, errOut := execute(t, "gen", "set-current", "99", "--format", "text")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "Error: [OUT_OF_RANGE]")
	})
}

func TestExecute_ExitCodes(t *testing.T) {
	env := newCLIEnv(t)

	code, out, _ := execute(t, "is-unlocked", "--format", "text")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Unlocked\n", out)

	require.NoError(t, os.MkdirAll(env.storeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.storeDir, ".lock"), nil, 0644))

	code, out, errOut := execute(t, "is-unlocked", "--format", "text")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Locked")
	assert.NotContains(t, errOut, "Error:", "a plain exit status is not reported as a failure")
}

func TestExecute_BadFormat(t *testing.T) {
	newCLIEnv(t)
	code, out, errOut := execute(t, "gen", "list", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "unknown format: xml")
}
