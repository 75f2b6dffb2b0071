package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"workspacectl/internal/session"
)

// Settings is the optional per-user override file. Everything has a
// sensible default; a missing file is not an error.
type Settings struct {
	// SessionPool replaces the built-in ordered session name pool.
	SessionPool []string `yaml:"session_pool"`
	// WorkDir is the directory new sessions start in (default: $HOME).
	WorkDir string `yaml:"workdir"`
	// AgentCmd is the startup command injected into the session
	// (default: the coding agent with confirmations suppressed).
	AgentCmd string `yaml:"agent_cmd"`
}

const settingsFile = "workspace.yaml"

// DefaultAgentCmd launches the coding agent without per-action
// confirmation prompts, as the workspace session expects.
const DefaultAgentCmd = "claude --dangerously-skip-permissions"

// Load reads the settings file from the config dir and fills defaults.
func Load() (Settings, error) {
	s := Settings{}
	dir, err := Dir()
	if err == nil {
		if b, rerr := os.ReadFile(filepath.Join(dir, settingsFile)); rerr == nil {
			if uerr := yaml.Unmarshal(b, &s); uerr != nil {
				return Settings{}, uerr
			}
		}
	}
	if len(s.SessionPool) == 0 {
		s.SessionPool = session.DefaultPool
	}
	if s.WorkDir == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			s.WorkDir = home
		} else {
			s.WorkDir = "."
		}
	}
	if s.AgentCmd == "" {
		s.AgentCmd = DefaultAgentCmd
	}
	return s, nil
}
