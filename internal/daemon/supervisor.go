// Package daemon keeps the workspace helper daemon alive across runs.
package daemon

import (
	"context"
	"time"

	clog "github.com/charmbracelet/log"

	"workspacectl/internal/system"
)

// Handle identifies the logical daemon singleton on this host: the
// binary plus its status and start argv. At most one instance should
// run; the supervisor only enforces "start if the status query reports
// not-running", so a race between concurrent bootstraps is possible and
// accepted.
type Handle struct {
	Name       string
	Bin        string
	StatusArgs []string
	StartArgs  []string
}

// DefaultHandle is the workspaced helper daemon.
var DefaultHandle = Handle{
	Name:       "workspaced",
	Bin:        "workspaced",
	StatusArgs: []string{"status"},
	StartArgs:  []string{"start"},
}

const (
	statusTimeout = 3 * time.Second
	pollAttempts  = 5
	pollInterval  = 400 * time.Millisecond
)

// Supervisor starts the helper daemon when its status query reports it
// down. Failure to start is non-fatal; the run proceeds without the
// daemon's capability.
type Supervisor struct {
	Runner system.Runner
	Log    *clog.Logger

	// Sleep overrides time.Sleep in tests.
	Sleep func(time.Duration)
}

// Ensure issues the status query and, when the daemon is down, its
// start command followed by a capped wait-and-poll for readiness.
// The returned bool reports whether the daemon is up afterwards.
func (s *Supervisor) Ensure(ctx context.Context, h Handle) bool {
	if _, ok := s.Runner.LookPath(h.Bin); !ok {
		s.Log.Warn("helper daemon not installed, continuing without it", "daemon", h.Name)
		return false
	}
	if s.running(ctx, h) {
		s.Log.Debug("helper daemon already running", "daemon", h.Name)
		return true
	}

	s.Log.Info("starting helper daemon", "daemon", h.Name)
	cctx, cancel := context.WithTimeout(ctx, statusTimeout)
	_, err := s.Runner.Run(cctx, h.Bin, h.StartArgs...)
	cancel()
	if err != nil {
		s.Log.Warn("helper daemon start failed", "daemon", h.Name, "err", err)
		return false
	}

	for i := 0; i < pollAttempts; i++ {
		if s.running(ctx, h) {
			return true
		}
		s.sleep(pollInterval)
	}
	s.Log.Warn("helper daemon did not report ready, continuing", "daemon", h.Name)
	return false
}

func (s *Supervisor) running(ctx context.Context, h Handle) bool {
	cctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	_, err := s.Runner.Run(cctx, h.Bin, h.StatusArgs...)
	return err == nil
}

func (s *Supervisor) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}
