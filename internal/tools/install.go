package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"

	"workspacectl/internal/system"
)

const installTimeout = 10 * time.Minute

// downloadClient allows bulk artifact fetches to outlive the short
// metadata-fetch timeout.
var downloadClient = &http.Client{Timeout: installTimeout}

// Installer performs one-time tool installation. Strategies are tried
// in priority order: package manager, direct artifact download, vendor
// install script. A partially written download never blocks a retry:
// artifacts land under a temp name and are renamed only when complete.
type Installer struct {
	Runner system.Runner
	Log    *clog.Logger

	// BinDir is the user-local install directory used for direct
	// downloads and as the last privilege fallback. Defaults to
	// ~/.local/bin.
	BinDir string
}

type strategy struct {
	name string
	run  func(ctx context.Context) error
}

// Install converges t to present. version is the desired version when
// the caller already resolved one (used to address download artifacts);
// it may be empty.
func (in *Installer) Install(ctx context.Context, t ToolInfo, version string) error {
	strategies := in.strategiesFor(t, version)
	if len(strategies) == 0 {
		return fmt.Errorf("%s: no applicable install strategy", t.ID)
	}
	var lastErr error
	for _, s := range strategies {
		in.logf("installing %s via %s", t.DisplayName, s.name)
		cctx, cancel := context.WithTimeout(ctx, installTimeout)
		err := s.run(cctx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		in.logf("%s: %s failed: %v", t.ID, s.name, err)
	}
	return fmt.Errorf("%s: all install strategies failed: %w", t.ID, lastErr)
}

func (in *Installer) strategiesFor(t ToolInfo, version string) []strategy {
	var out []strategy
	if t.Package != "" {
		out = append(out, strategy{"npm", func(ctx context.Context) error {
			return in.installNpm(ctx, t.Package)
		}})
	}
	if t.PkgName != "" {
		if mgr, ok := system.DetectPkgManager(in.Runner); ok {
			out = append(out, strategy{mgr.Name, func(ctx context.Context) error {
				return in.installPkg(ctx, mgr, t.PkgName)
			}})
		}
	}
	if t.DownloadURL != "" {
		out = append(out, strategy{"download", func(ctx context.Context) error {
			return in.installDownload(ctx, t, version)
		}})
	}
	if t.ScriptURL != "" {
		if fetch, ok := in.scriptFetcher(); ok {
			out = append(out, strategy{"install script", func(ctx context.Context) error {
				_, err := in.Runner.Run(ctx, "sh", "-c", fetch+" "+t.ScriptURL+" | sh")
				return err
			}})
		}
	}
	return out
}

// scriptFetcher picks the pipe-to-shell downloader available on this
// host. Hosts with neither curl nor wget skip the script strategy
// instead of failing inside it.
func (in *Installer) scriptFetcher() (string, bool) {
	if _, ok := in.Runner.LookPath("curl"); ok {
		return "curl -fsSL", true
	}
	if _, ok := in.Runner.LookPath("wget"); ok {
		return "wget -qO-", true
	}
	return "", false
}

// installNpm installs pkg@latest globally, falling back through the
// privilege chain and finally to a user-local prefix.
func (in *Installer) installNpm(ctx context.Context, pkg string) error {
	if _, ok := in.Runner.LookPath("npm"); !ok {
		return fmt.Errorf("npm not available")
	}
	argv := []string{"npm", "install", "-g", pkg + "@latest", "--no-fund", "--no-audit"}
	if err := in.runEscalating(ctx, argv); err == nil {
		return nil
	}
	// Last resort: install under the user prefix and extend PATH.
	prefix := filepath.Dir(in.binDir())
	local := append([]string{argv[0]}, append([]string{"--prefix", prefix}, argv[1:]...)...)
	if _, err := in.Runner.Run(ctx, local[0], local[1:]...); err != nil {
		return err
	}
	return in.ensureProfilePath()
}

func (in *Installer) installPkg(ctx context.Context, mgr system.PkgManager, pkg string) error {
	argv := mgr.InstallArgs(pkg)
	if !mgr.NeedsRoot || os.Geteuid() == 0 {
		_, err := in.Runner.Run(ctx, argv[0], argv[1:]...)
		return err
	}
	return in.runEscalating(ctx, argv)
}

// runEscalating tries argv unprivileged, then non-interactive sudo,
// then interactive sudo. The first success wins.
func (in *Installer) runEscalating(ctx context.Context, argv []string) error {
	attempts := [][]string{argv}
	if _, ok := in.Runner.LookPath("sudo"); ok {
		attempts = append(attempts,
			append([]string{"sudo", "-n"}, argv...),
			append([]string{"sudo"}, argv...),
		)
	}
	var lastErr error
	for _, a := range attempts {
		_, err := in.Runner.Run(ctx, a[0], a[1:]...)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// installDownload fetches the release artifact for the host platform
// into BinDir. The write goes through a temp file and a rename so an
// interrupted download cannot leave a half-written binary in place.
func (in *Installer) installDownload(ctx context.Context, t ToolInfo, version string) error {
	if version == "" {
		v, err := LatestVersion(ctx, in.Runner, t)
		if err != nil {
			return fmt.Errorf("resolve download version: %w", err)
		}
		version = v
	}
	url := expandDownloadURL(t.DownloadURL, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	dir := in.binDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dir, string(t.ID))
	tmp, err := os.CreateTemp(dir, string(t.ID)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o755); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return err
	}
	return in.ensureProfilePath()
}

func expandDownloadURL(tpl, version string) string {
	return strings.NewReplacer(
		"{version}", NormalizeVersion(version),
		"{os}", runtime.GOOS,
		"{arch}", runtime.GOARCH,
	).Replace(tpl)
}

func (in *Installer) binDir() string {
	if in.BinDir != "" {
		return in.BinDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".local/bin"
	}
	return filepath.Join(home, ".local", "bin")
}

// ensureProfilePath appends a PATH export for the user bindir to
// ~/.profile once; repeated runs are no-ops.
func (in *Installer) ensureProfilePath() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	line := `export PATH="$HOME/.local/bin:$PATH"`
	profile := filepath.Join(home, ".profile")
	if b, err := os.ReadFile(profile); err == nil && strings.Contains(string(b), line) {
		return nil
	}
	f, err := os.OpenFile(profile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "\n%s\n", line)
	return err
}

func (in *Installer) logf(format string, args ...any) {
	if in.Log != nil {
		in.Log.Debugf(format, args...)
	}
}
