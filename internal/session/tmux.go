package session

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"workspacectl/internal/system"
)

const tmuxTimeout = 3 * time.Second

// Client wraps the tmux server commands the orchestrator needs. All
// calls go through the Runner seam except Attach, which must own the
// terminal.
type Client struct {
	Runner system.Runner
}

// HasSession reports whether a session with exactly this name is live.
func (c *Client) HasSession(ctx context.Context, name string) bool {
	cctx, cancel := context.WithTimeout(ctx, tmuxTimeout)
	defer cancel()
	// "=" pins exact-name matching; tmux otherwise prefix-matches.
	_, err := c.Runner.Run(cctx, "tmux", "has-session", "-t", "="+name)
	return err == nil
}

// HasServer reports whether a tmux server with at least one session is
// already running for this user.
func (c *Client) HasServer(ctx context.Context) bool {
	cctx, cancel := context.WithTimeout(ctx, tmuxTimeout)
	defer cancel()
	out, err := c.Runner.Run(cctx, "tmux", "list-sessions", "-F", "#{session_name}")
	return err == nil && strings.TrimSpace(out) != ""
}

// NewSession creates a detached session rooted at dir with conf as its
// configuration file.
func (c *Client) NewSession(ctx context.Context, name, dir, conf string) error {
	cctx, cancel := context.WithTimeout(ctx, tmuxTimeout)
	defer cancel()
	args := []string{"new-session", "-d", "-s", name, "-c", dir}
	if conf != "" {
		args = append([]string{"-f", conf}, args...)
	}
	if _, err := c.Runner.Run(cctx, "tmux", args...); err != nil {
		return fmt.Errorf("tmux new-session: %w", err)
	}
	return nil
}

// SourceConfig reloads conf into the running server so configuration
// changes reach already-open windows, not only new ones.
func (c *Client) SourceConfig(ctx context.Context, conf string) error {
	cctx, cancel := context.WithTimeout(ctx, tmuxTimeout)
	defer cancel()
	if _, err := c.Runner.Run(cctx, "tmux", "source-file", conf); err != nil {
		return fmt.Errorf("tmux source-file: %w", err)
	}
	return nil
}

// SendKeys types keys followed by Enter into the session's active pane.
func (c *Client) SendKeys(ctx context.Context, name, keys string) error {
	cctx, cancel := context.WithTimeout(ctx, tmuxTimeout)
	defer cancel()
	if _, err := c.Runner.Run(cctx, "tmux", "send-keys", "-t", "="+name, keys, "Enter"); err != nil {
		return fmt.Errorf("tmux send-keys: %w", err)
	}
	return nil
}

// Attach connects the caller's terminal to the session with real
// stdin/stdout/stderr. It bypasses the Runner seam on purpose and
// blocks until the session is detached or terminated.
func (c *Client) Attach(name string) error {
	cmd := exec.Command("tmux", "attach-session", "-t", "="+name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux attach-session: %w", err)
	}
	return nil
}
