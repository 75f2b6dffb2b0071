package session

import (
	"context"
	"fmt"
)

// Launcher creates the workspace session and hands the terminal to it.
type Launcher struct {
	Client *Client

	// Attach overrides the blocking terminal attach in tests.
	Attach func(name string) error
}

// Launch creates a detached session named name rooted at dir, applies
// conf, injects startupCmd into the first pane, and attaches the
// caller. When a tmux server is already up with live sessions, conf is
// sourced into it first so the changes land in open windows too.
// Launch blocks until the attached session is detached or terminated.
func (l *Launcher) Launch(ctx context.Context, name, dir, conf, startupCmd string) error {
	if l.Client.HasServer(ctx) {
		if err := l.Client.SourceConfig(ctx, conf); err != nil {
			return fmt.Errorf("reload config on running server: %w", err)
		}
	}
	if err := l.Client.NewSession(ctx, name, dir, conf); err != nil {
		return err
	}
	if err := l.Client.SendKeys(ctx, name, startupCmd); err != nil {
		return err
	}
	attach := l.Attach
	if attach == nil {
		attach = l.Client.Attach
	}
	return attach(name)
}
