package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	tu "workspacectl/internal/testutil"
)

func TestExpandDownloadURL(t *testing.T) {
	got := expandDownloadURL("https://dl.k8s.io/release/v{version}/bin/{os}/{arch}/kubectl", "v1.30.2")
	want := fmt.Sprintf("https://dl.k8s.io/release/v1.30.2/bin/%s/%s/kubectl", runtime.GOOS, runtime.GOARCH)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStrategyOrder(t *testing.T) {
	r := &fakeRunner{paths: map[string]string{
		"apt-get": "/usr/bin/apt-get",
		"npm":     "/usr/bin/npm",
		"curl":    "/usr/bin/curl",
	}}
	in := &Installer{Runner: r, Log: testLogger()}

	names := func(t ToolInfo) []string {
		var out []string
		for _, s := range in.strategiesFor(t, "") {
			out = append(out, s.name)
		}
		return out
	}

	got := names(ToolInfo{PkgName: "tmux", DownloadURL: "https://x/{version}", ScriptURL: "https://x/install.sh"})
	want := []string{"apt-get", "download", "install script"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("strategy order = %v, want %v", got, want)
	}

	got = names(ToolInfo{Package: "@anthropic-ai/claude-code"})
	if len(got) != 1 || got[0] != "npm" {
		t.Fatalf("npm tools should use the npm strategy, got %v", got)
	}
}

func TestScriptStrategyNeedsDownloader(t *testing.T) {
	tool := ToolInfo{ID: ToolCodeServer, ScriptURL: "https://code-server.dev/install.sh"}

	// Neither curl nor wget: the script strategy must not be offered.
	in := &Installer{Runner: &fakeRunner{paths: map[string]string{}}, Log: testLogger()}
	if got := in.strategiesFor(tool, ""); len(got) != 0 {
		t.Fatalf("expected no strategies without a downloader, got %d", len(got))
	}

	// wget-only host: the pipeline falls back to wget.
	r := &fakeRunner{
		paths: map[string]string{"wget": "/usr/bin/wget"},
		out:   map[string]string{"sh -c wget -qO- https://code-server.dev/install.sh | sh": ""},
	}
	in = &Installer{Runner: r, Log: testLogger()}
	if err := in.Install(context.Background(), tool, ""); err != nil {
		t.Fatalf("wget fallback should run the script: %v", err)
	}
}

func TestInstallNoStrategy(t *testing.T) {
	in := &Installer{Runner: &fakeRunner{paths: map[string]string{}}, Log: testLogger()}
	if err := in.Install(context.Background(), ToolInfo{ID: ToolGit}, ""); err == nil {
		t.Fatal("expected error when no strategy applies")
	}
}

func TestRunEscalatingFallsThroughToSudo(t *testing.T) {
	argv := []string{"apt-get", "install", "-y", "tmux"}
	key := strings.Join(argv, " ")
	r := &fakeRunner{
		paths: map[string]string{"sudo": "/usr/bin/sudo"},
		out:   map[string]string{"sudo " + key: "ok"},
		errs: map[string]error{
			key:            fmt.Errorf("permission denied"),
			"sudo -n " + key: fmt.Errorf("a password is required"),
		},
	}
	in := &Installer{Runner: r, Log: testLogger()}
	if err := in.runEscalating(context.Background(), argv); err != nil {
		t.Fatalf("escalation chain should have succeeded via sudo: %v", err)
	}
	wantOrder := []string{key, "sudo -n " + key, "sudo " + key}
	if strings.Join(r.calls, "|") != strings.Join(wantOrder, "|") {
		t.Fatalf("attempt order = %v, want %v", r.calls, wantOrder)
	}
}

func TestRunEscalatingNoSudoOnHost(t *testing.T) {
	argv := []string{"apk", "add", "tmux"}
	r := &fakeRunner{
		paths: map[string]string{},
		errs:  map[string]error{strings.Join(argv, " "): fmt.Errorf("denied")},
		out:   map[string]string{strings.Join(argv, " "): ""},
	}
	in := &Installer{Runner: r, Log: testLogger()}
	if err := in.runEscalating(context.Background(), argv); err == nil {
		t.Fatal("expected failure when sudo is unavailable")
	}
	if len(r.calls) != 1 {
		t.Fatalf("must not invent sudo attempts without sudo on PATH: %v", r.calls)
	}
}

func TestInstallNpmUserLocalFallback(t *testing.T) {
	home := tu.Home(t)
	bindir := filepath.Join(home, ".local", "bin")

	base := "npm install -g @anthropic-ai/claude-code@latest --no-fund --no-audit"
	local := "npm --prefix " + filepath.Dir(bindir) + " install -g @anthropic-ai/claude-code@latest --no-fund --no-audit"
	r := &fakeRunner{
		paths: map[string]string{"npm": "/usr/bin/npm", "sudo": "/usr/bin/sudo"},
		errs: map[string]error{
			base:             fmt.Errorf("EACCES"),
			"sudo -n " + base: fmt.Errorf("a password is required"),
			"sudo " + base:    fmt.Errorf("not a tty"),
		},
		out: map[string]string{base: "", "sudo -n " + base: "", "sudo " + base: "", local: "ok"},
	}
	in := &Installer{Runner: r, Log: testLogger(), BinDir: bindir}
	if err := in.installNpm(context.Background(), "@anthropic-ai/claude-code"); err != nil {
		t.Fatalf("user-local fallback should succeed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, ".profile"))
	if err != nil {
		t.Fatalf("profile not written: %v", err)
	}
	if !strings.Contains(string(b), `.local/bin`) {
		t.Fatalf("profile missing PATH extension: %q", b)
	}
}

func TestEnsureProfilePathIdempotent(t *testing.T) {
	home := tu.Home(t)
	in := &Installer{Runner: &fakeRunner{}, Log: testLogger()}
	for i := 0; i < 3; i++ {
		if err := in.ensureProfilePath(); err != nil {
			t.Fatalf("ensureProfilePath: %v", err)
		}
	}
	b, err := os.ReadFile(filepath.Join(home, ".profile"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), ".local/bin"); n != 1 {
		t.Fatalf("PATH line appended %d times, want 1:\n%s", n, b)
	}
}

func TestInstallDownload(t *testing.T) {
	tu.Home(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/v1.30.2/kubectl" {
			http.NotFound(w, req)
			return
		}
		fmt.Fprint(w, "fake-kubectl-binary")
	}))
	defer srv.Close()

	bindir := t.TempDir()
	// A leftover partial artifact from an interrupted run must not
	// block the retry.
	if err := os.WriteFile(filepath.Join(bindir, "kubectl.partial"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := &Installer{Runner: &fakeRunner{}, Log: testLogger(), BinDir: bindir}
	tool := ToolInfo{ID: ToolKubectl, DownloadURL: srv.URL + "/v{version}/kubectl"}
	if err := in.installDownload(context.Background(), tool, "v1.30.2"); err != nil {
		t.Fatalf("installDownload: %v", err)
	}

	dst := filepath.Join(bindir, "kubectl")
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "fake-kubectl-binary" {
		t.Fatalf("unexpected artifact content: %q", b)
	}
	st, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm()&0o100 == 0 {
		t.Fatalf("artifact not executable: %v", st.Mode())
	}
}

func TestInstallDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	in := &Installer{Runner: &fakeRunner{}, Log: testLogger(), BinDir: t.TempDir()}
	tool := ToolInfo{ID: ToolKubectl, DownloadURL: srv.URL + "/{version}/kubectl"}
	if err := in.installDownload(context.Background(), tool, "1.30.2"); err == nil {
		t.Fatal("expected error on 404")
	}
}
