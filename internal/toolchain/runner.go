package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/quocvuong92/build-shell/internal/logging"
)

// ExecRunner runs invocations as real subprocesses. The child inherits the
// shell's stdin, stdout and stderr so build output is visible as it happens,
// and the shell blocks until the child exits. No timeout is imposed.
type ExecRunner struct {
	// tool is the build-tool binary name, used by the watch probe.
	tool string

	log *logging.Logger
}

// NewExecRunner creates a runner for the given build-tool name.
func NewExecRunner(tool string) *ExecRunner {
	return &ExecRunner{
		tool: tool,
		log:  logging.DefaultLogger,
	}
}

// Run executes the invocation synchronously. A process that fails to start
// and a process that exits non-zero are reported as the same error class:
// the command could not be executed successfully.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	argv := inv.Argv()
	r.log.Debug("running invocation", logging.Fields{
		"selector":  inv.Selector,
		"toolchain": inv.Toolchain,
		"argv":      strings.Join(argv, " "),
		"dir":       inv.Dir,
	})

	cmd := exec.CommandContext(ctx, inv.Selector, argv...)
	cmd.Dir = inv.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("could not execute %s run command: %w", inv.Selector, err)
	}
	return nil
}

// WatchAvailable probes whether the build tool's watch companion is
// installed by invoking `<tool> watch --help`. All of the child's input and
// output is discarded; only the exit status matters.
func (r *ExecRunner) WatchAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, r.tool, "watch", "--help")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	err := cmd.Run()
	if err != nil {
		r.log.Debug("watch probe failed", logging.Fields{"tool": r.tool, "reason": err.Error()})
	}
	return err == nil
}
