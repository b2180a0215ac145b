// Package execution runs shell commands on behalf of package-manager
// backends and hooks.
package execution

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/logging"
)

// DefaultShell is used when no shell is configured
const DefaultShell = "sh"

// maxCapturedOutput bounds how much output is attached to a failure
const maxCapturedOutput = 4096

// Runner executes a shell command line synchronously
type Runner interface {
	Run(ctx context.Context, command string) error
}

// ShellRunner runs commands as `<shell> -c <command>` with the process'
// standard streams attached.
type ShellRunner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

// NewShellRunner creates a runner attached to the process stdio
func NewShellRunner(shell string) *ShellRunner {
	if shell == "" {
		shell = DefaultShell
	}
	return &ShellRunner{
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes command and waits for it. A non-zero exit status is
// reported as ErrCommandFailed with the exit code and the tail of the
// combined output.
func (r *ShellRunner) Run(ctx context.Context, command string) error {
	logger := logging.GetLogger("execution.shell")

	if strings.TrimSpace(command) == "" {
		return errors.New(errors.ErrInvalidInput, "refusing to run an empty command")
	}

	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	cmd.Stdin = r.Stdin
	if r.Env != nil {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var captured bytes.Buffer
	cmd.Stdout = teeWriter(r.Stdout, &captured)
	cmd.Stderr = teeWriter(r.Stderr, &captured)

	logger.Info().Str("command", command).Str("shell", r.Shell).Msg("Executing command")
	start := time.Now()
	err := cmd.Run()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		output := tail(captured.String(), maxCapturedOutput)

		logger.Error().
			Err(err).
			Str("command", command).
			Int("exit_code", exitCode).
			Str("output", output).
			Msg("Command execution failed")

		return errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", command).
			WithDetails(map[string]interface{}{
				"command":   command,
				"exit_code": exitCode,
				"output":    output,
			})
	}

	logger.Debug().
		Str("command", command).
		Dur("duration", time.Since(start)).
		Msg("Command executed successfully")
	return nil
}

func teeWriter(w io.Writer, capture *bytes.Buffer) io.Writer {
	if w == nil {
		return capture
	}
	return io.MultiWriter(w, capture)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Quote returns s as a single POSIX shell word
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~=%") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
