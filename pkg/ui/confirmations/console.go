// Package confirmations provides console prompts for destructive actions.
package confirmations

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/hostgen/pkg/errors"
)

// ConsoleDialog asks y/N questions and counts down before risky actions
type ConsoleDialog struct {
	in    *bufio.Reader
	out   io.Writer
	sleep func(time.Duration)
}

// NewConsoleDialog creates a dialog reading answers from in
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{
		in:    bufio.NewReader(in),
		out:   out,
		sleep: time.Sleep,
	}
}

// WithSleep replaces the function used to wait between countdown ticks
func (d *ConsoleDialog) WithSleep(sleep func(time.Duration)) *ConsoleDialog {
	d.sleep = sleep
	return d
}

// Warn prints a highlighted warning line
func (d *ConsoleDialog) Warn(msg string) {
	pterm.Warning.WithWriter(d.out).Println(msg)
}

// Confirm asks question and reports whether the user agreed. An empty
// answer or end of input takes the default.
func (d *ConsoleDialog) Confirm(question string, defaultYes bool) (bool, error) {
	marker := "[y/N]"
	if defaultYes {
		marker = "[Y/n]"
	}
	if _, err := fmt.Fprintf(d.out, "%s %s: ", question, marker); err != nil {
		return false, err
	}

	line, err := d.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to read user input")
	}

	response := strings.ToLower(strings.TrimSpace(line))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// Countdown shows a visible countdown of seconds before action happens.
// Cancelling ctx aborts it with ErrAborted.
func (d *ConsoleDialog) Countdown(ctx context.Context, seconds int, action string) error {
	tick := pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	for remaining := seconds; remaining > 0; remaining-- {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrAborted, "countdown interrupted")
		}
		if _, err := fmt.Fprintf(d.out, "%s in %s... (Ctrl-C to abort)\n", action, tick.Sprint(remaining)); err != nil {
			return err
		}
		d.sleep(time.Second)
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrAborted, "countdown interrupted")
	}
	return nil
}
