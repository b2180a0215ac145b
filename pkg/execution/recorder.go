package execution

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/hostgen/pkg/errors"
)

// Recorder is a Runner that records commands instead of executing them.
// Commands containing any FailOn substring fail with ErrCommandFailed.
type Recorder struct {
	mu       sync.Mutex
	Commands []string
	FailOn   []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Run records command and fails it when it matches FailOn
func (r *Recorder) Run(ctx context.Context, command string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.Commands = append(r.Commands, command)
	for _, pattern := range r.FailOn {
		if strings.Contains(command, pattern) {
			return errors.Newf(errors.ErrCommandFailed, "command failed: %s", command).
				WithDetail("command", command)
		}
	}
	return nil
}

// Recorded returns a copy of the commands seen so far
func (r *Recorder) Recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Commands...)
}

// Reset forgets recorded commands
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = nil
}
