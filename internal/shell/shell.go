// Package shell runs template commands through the system shell.
//
// Commands come from the template and are trusted: nothing here restricts
// or sandboxes them.
package shell

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"charm.land/log/v2"
)

// waitDelay bounds how long a canceled command's children may keep its
// output pipes open.
const waitDelay = time.Second

// Runner executes commands and reports their trimmed standard output.
type Runner struct {
	shell  string
	stderr io.Writer
	logger *log.Logger
	count  int

	onFailure func(command string, err error)
}

// NewRunner creates a Runner. An empty shell selects the platform default
// ("/bin/sh" on Unix, "cmd" on Windows). The command's stderr is copied to
// stderr; pass nil to discard it.
func NewRunner(shell string, stderr io.Writer, logger *log.Logger) *Runner {
	if stderr == nil {
		stderr = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{shell: shell, stderr: stderr, logger: logger}
}

// OnFailure registers fn to be called when a command exits unsuccessfully.
// It is not called for commands stopped by a canceled context.
func (r *Runner) OnFailure(fn func(command string, err error)) *Runner {
	r.onFailure = fn
	return r
}

// Output runs command and returns its stdout with surrounding whitespace
// removed. A failing command is not an error: whatever it printed is used,
// and the failure is logged at debug level.
func (r *Runner) Output(ctx context.Context, command string) string {
	r.count++
	name, args := r.argv(command)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = waitDelay

	r.logger.Debug("running command", "cmd", command)
	if err := cmd.Run(); err != nil {
		r.logger.Debug("command failed", "cmd", command, "err", err)
		if r.onFailure != nil && ctx.Err() == nil {
			r.onFailure(command, err)
		}
	}

	return strings.TrimSpace(stdout.String())
}

// Count returns how many commands Output has run.
func (r *Runner) Count() int {
	return r.count
}

// argv builds the shell invocation for command.
func (r *Runner) argv(command string) (string, []string) {
	if r.shell != "" {
		return r.shell, []string{"-c", command}
	}
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "/bin/sh", []string{"-c", command}
}
