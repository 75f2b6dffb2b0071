package session

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"workspacectl/internal/system"
)

const tpmRepo = "https://github.com/tmux-plugins/tpm"

// confTemplate is the generated multiplexer configuration. Plain
// declarative directives; the plugin block is inert until tpm exists.
const confTemplate = `# generated by workspacectl; edits are overwritten
set -g default-terminal "tmux-256color"
set -ga terminal-overrides ",*256col*:Tc"
set -g mouse on
set -g history-limit 50000
set -g base-index 1
setw -g pane-base-index 1
setw -g mode-keys vi
set -g status-style "bg=colour236,fg=colour250"
set -g status-left "#[bold] #S "
set -g status-right " %H:%M "

set -g @plugin "tmux-plugins/tpm"
set -g @plugin "tmux-plugins/tmux-sensible"
run-shell -b "test -x ~/.tmux/plugins/tpm/tpm && ~/.tmux/plugins/tpm/tpm || true"
`

// WriteConf materializes the generated tmux configuration under dir and
// returns its path. The write is idempotent: when the file already has
// the wanted content nothing is touched.
func WriteConf(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "tmux.conf")
	want := []byte(confTemplate)
	if have, err := os.ReadFile(path); err == nil && bytes.Equal(have, want) {
		return path, nil
	}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// EnsurePluginManager clones the tmux plugin manager into the user's
// plugin directory once. A failed or partial clone is removed so the
// next run can retry cleanly.
func EnsurePluginManager(ctx context.Context, r system.Runner) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dst := filepath.Join(home, ".tmux", "plugins", "tpm")
	if st, err := os.Stat(filepath.Join(dst, ".git")); err == nil && st.IsDir() {
		return nil
	}
	_ = os.RemoveAll(dst)
	cctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if _, err := r.Run(cctx, "git", "clone", "--depth=1", tpmRepo, dst); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("clone tpm: %w", err)
	}
	return nil
}
