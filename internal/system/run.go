package system

import (
	"context"
	"os"
	"os/exec"
)

// Runner is the single seam through which the orchestrator touches the host:
// process-table probes, package managers, tmux, everything. Tests substitute
// a fake instead of shelling out.
type Runner interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports whether bin resolves on the search path.
	LookPath(bin string) (string, bool)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Avoid opening pager or interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}

func (ExecRunner) LookPath(bin string) (string, bool) {
	p, err := exec.LookPath(bin)
	return p, err == nil
}
