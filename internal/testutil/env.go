package testutil

import (
	"os"
	"testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// Returns a cleanup func to restore previous value.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// Home redirects HOME and XDG_CONFIG_HOME to a fresh temp dir and
// returns it. Cleanup restores both.
func Home(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	restoreHome := WithEnv(t, "HOME", tmp)
	restoreXDG := WithEnv(t, "XDG_CONFIG_HOME", tmp)
	t.Cleanup(func() {
		restoreXDG()
		restoreHome()
	})
	return tmp
}
