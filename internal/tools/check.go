package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workspacectl/internal/system"
)

const probeTimeout = 3 * time.Second

// Check attempts to detect a tool via PATH binaries, then falls back to
// its well-known install paths. Absence is a normal outcome, never an
// error: the zero-value CheckResult with Installed=false means "not
// present yet".
func Check(ctx context.Context, r system.Runner, t ToolInfo) CheckResult {
	for _, bin := range t.Binaries {
		if path, ok := r.LookPath(bin); ok {
			res := queryVersion(ctx, r, t, path)
			res.Source = bin
			return res
		}
	}

	// Tools installed to a user-local bindir may not be on PATH yet
	// within the invoking shell; probe their known locations directly.
	for _, p := range t.ExtraPaths {
		p = expandHome(p)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			res := queryVersion(ctx, r, t, p)
			res.Source = p
			return res
		}
	}

	// npm-distributed tools may be installed globally without a PATH
	// shim visible to this process yet.
	if t.Package != "" {
		cctx, cancel := context.WithTimeout(ctx, probeTimeout)
		ver, err := npmInstalledVersion(cctx, r, t.Package)
		cancel()
		if err == nil && ver != "" {
			return CheckResult{Installed: true, Version: NormalizeVersion(ver), Source: "npm -g"}
		}
	}

	return CheckResult{Installed: false}
}

// queryVersion runs the descriptor's version args against path until one
// produces output. A binary that exists but yields no parsable version
// still counts as installed.
func queryVersion(ctx context.Context, r system.Runner, t ToolInfo, path string) CheckResult {
	for _, args := range t.VersionArgs {
		cctx, cancel := context.WithTimeout(ctx, probeTimeout)
		out, err := r.Run(cctx, path, args...)
		cancel()
		if err != nil || strings.TrimSpace(out) == "" {
			continue
		}
		if v, ok := ParseVersion(out); ok {
			return CheckResult{Installed: true, Version: v.String()}
		}
		return CheckResult{Installed: true}
	}
	return CheckResult{Installed: true}
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "$HOME") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "$HOME"))
}
