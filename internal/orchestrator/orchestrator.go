// Package orchestrator runs the end-to-end workspace bootstrap:
// prerequisite checks, tool provisioning, daemon supervision, session
// allocation, and the final attach.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	clog "github.com/charmbracelet/log"

	"workspacectl/internal/config"
	"workspacectl/internal/daemon"
	"workspacectl/internal/session"
	"workspacectl/internal/system"
	"workspacectl/internal/tools"
)

// ErrRequiredTool marks hard failures: a tool the session cannot start
// without could not be installed or updated.
var ErrRequiredTool = errors.New("required tool unavailable")

// prereqs must be present before anything else: git fetches the tmux
// plugin manager, tmux hosts the session.
var prereqs = []tools.ToolID{tools.ToolGit, tools.ToolTmux}

// Orchestrator wires the provisioning steps together. Every step is
// idempotent, so a failed run can simply be re-invoked.
type Orchestrator struct {
	Runner   system.Runner
	Log      *clog.Logger
	Settings config.Settings

	// SkipSession stops after daemon supervision (provision-only mode
	// for CI and image prebuilds).
	SkipSession bool

	Reconciler *tools.Reconciler
	Supervisor *daemon.Supervisor
	Tmux       *session.Client
	Launcher   *session.Launcher
	Daemon     daemon.Handle
}

// New builds an Orchestrator against the real host.
func New(settings config.Settings, log *clog.Logger) *Orchestrator {
	r := system.ExecRunner{}
	tm := &session.Client{Runner: r}
	return &Orchestrator{
		Runner:     r,
		Log:        log,
		Settings:   settings,
		Reconciler: tools.NewReconciler(r, log),
		Supervisor: &daemon.Supervisor{Runner: r, Log: log},
		Tmux:       tm,
		Launcher:   &session.Launcher{Client: tm},
		Daemon:     daemon.DefaultHandle,
	}
}

// Run executes the bootstrap to the attached session (or to the end of
// daemon supervision with SkipSession). Hard failures return an error
// wrapping ErrRequiredTool or session.ErrPoolExhausted; soft failures
// are logged and the run continues with degraded capability.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.Log.Info("checking prerequisites")
	for _, id := range prereqs {
		t, _ := tools.ByID(id)
		if _, err := o.Reconciler.Ensure(ctx, t); err != nil {
			return fmt.Errorf("%s: %v: %w", t.ID, err, ErrRequiredTool)
		}
	}

	if err := session.EnsurePluginManager(ctx, o.Runner); err != nil {
		o.Log.Warn("tmux plugin manager unavailable", "err", err)
	}

	o.Log.Info("provisioning tools")
	for _, t := range tools.Tools {
		if isPrereq(t.ID) {
			continue
		}
		outcome, err := o.Reconciler.Ensure(ctx, t)
		if err != nil {
			if t.Required {
				return fmt.Errorf("%s: %v: %w", t.ID, err, ErrRequiredTool)
			}
			o.Log.Warn("optional tool unavailable, continuing", "tool", t.ID, "err", err)
			continue
		}
		o.Log.Debug("tool ready", "tool", t.ID, "outcome", outcome)
	}

	o.Supervisor.Ensure(ctx, o.Daemon)

	if o.SkipSession {
		o.Log.Info("provisioning complete (session skipped)")
		return nil
	}

	confDir, err := config.Dir()
	if err != nil {
		return err
	}
	confPath, err := session.WriteConf(confDir)
	if err != nil {
		return fmt.Errorf("write tmux config: %w", err)
	}

	alloc := session.Allocator{
		Pool: o.Settings.SessionPool,
		Live: func(name string) bool { return o.Tmux.HasSession(ctx, name) },
	}
	name, err := alloc.Allocate()
	if err != nil {
		return err
	}
	o.Log.Info("launching session", "name", name, "dir", o.Settings.WorkDir)

	return o.Launcher.Launch(ctx, name, o.Settings.WorkDir, confPath, o.Settings.AgentCmd)
}

func isPrereq(id tools.ToolID) bool {
	for _, p := range prereqs {
		if p == id {
			return true
		}
	}
	return false
}
