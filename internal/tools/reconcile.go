package tools

import (
	"context"

	clog "github.com/charmbracelet/log"

	"workspacectl/internal/system"
)

// Outcome classifies what a reconciliation pass did for one tool.
type Outcome int

const (
	// OutcomeCurrent: tool present and not behind its release source.
	OutcomeCurrent Outcome = iota
	// OutcomeInstalled: tool was absent and got a first-time install.
	OutcomeInstalled
	// OutcomeUpdated: tool was behind latest and was reinstalled.
	OutcomeUpdated
	// OutcomeSkipped: latest version unknown; kept installed version.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "current"
	}
}

// Reconciler converges one tool to its desired state: install when
// absent, update when the installed version is behind the latest
// published one, no-op otherwise. Fetch and Install default to the real
// release sources and Installer; tests inject fakes.
type Reconciler struct {
	Runner system.Runner
	Log    *clog.Logger

	Fetch   func(ctx context.Context, t ToolInfo) (string, error)
	Install func(ctx context.Context, t ToolInfo, version string) error
}

// NewReconciler wires a Reconciler to the real collaborators.
func NewReconciler(r system.Runner, log *clog.Logger) *Reconciler {
	in := &Installer{Runner: r, Log: log}
	return &Reconciler{
		Runner: r,
		Log:    log,
		Fetch: func(ctx context.Context, t ToolInfo) (string, error) {
			return LatestVersion(ctx, r, t)
		},
		Install: in.Install,
	}
}

// Ensure runs one reconciliation pass for t. The returned error is
// non-nil only when an install/update attempt failed; the caller maps
// that to a hard or soft failure based on t.Required.
func (rc *Reconciler) Ensure(ctx context.Context, t ToolInfo) (Outcome, error) {
	res := Check(ctx, rc.Runner, t)

	if !res.Installed {
		if err := rc.Install(ctx, t, ""); err != nil {
			return OutcomeInstalled, err
		}
		rc.Log.Info("installed", "tool", t.ID)
		return OutcomeInstalled, nil
	}

	if t.Package == "" && t.LatestURL == "" && t.GithubRepo == "" {
		// Presence-only tool; nothing to reconcile against.
		return OutcomeCurrent, nil
	}

	latestStr, err := rc.Fetch(ctx, t)
	if err != nil {
		rc.Log.Warn("latest version unavailable, keeping installed",
			"tool", t.ID, "installed", res.Version, "err", err)
		return OutcomeSkipped, nil
	}
	latest, ok := ParseVersion(latestStr)
	if !ok {
		rc.Log.Warn("unparsable latest version, keeping installed",
			"tool", t.ID, "installed", res.Version, "latest", latestStr)
		return OutcomeSkipped, nil
	}

	installed, ok := ParseVersion(res.Version)
	if !ok {
		// Present but version unknown: treat as a first-time install.
		if err := rc.Install(ctx, t, latestStr); err != nil {
			return OutcomeInstalled, err
		}
		return OutcomeInstalled, nil
	}

	if installed.Less(latest) {
		rc.Log.Info("updating", "tool", t.ID, "from", installed, "to", latest)
		if err := rc.Install(ctx, t, latestStr); err != nil {
			return OutcomeUpdated, err
		}
		return OutcomeUpdated, nil
	}
	return OutcomeCurrent, nil
}
