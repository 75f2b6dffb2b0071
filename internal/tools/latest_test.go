package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLatestVersionPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, "v1.30.2\n")
	}))
	defer srv.Close()

	got, err := LatestVersion(context.Background(), &fakeRunner{}, ToolInfo{ID: ToolKubectl, LatestURL: srv.URL})
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if got != "v1.30.2" {
		t.Fatalf("got %q", got)
	}
}

func TestLatestVersionGithubRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/repos/coder/code-server/releases/latest" {
			http.NotFound(w, req)
			return
		}
		fmt.Fprint(w, `{"tag_name":"v4.89.1"}`)
	}))
	defer srv.Close()
	old := githubAPI
	githubAPI = srv.URL
	defer func() { githubAPI = old }()

	got, err := LatestVersion(context.Background(), &fakeRunner{}, ToolInfo{ID: ToolCodeServer, GithubRepo: "coder/code-server"})
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if got != "v4.89.1" {
		t.Fatalf("got %q", got)
	}
}

func TestLatestVersionNpm(t *testing.T) {
	r := &fakeRunner{
		out: map[string]string{`npm view @anthropic-ai/claude-code version --json`: "\"1.0.27\"\n"},
	}
	got, err := LatestVersion(context.Background(), r, ToolInfo{ID: ToolAgent, Package: "@anthropic-ai/claude-code"})
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if got != "1.0.27" {
		t.Fatalf("got %q", got)
	}
}

func TestLatestVersionNoSource(t *testing.T) {
	if _, err := LatestVersion(context.Background(), &fakeRunner{}, ToolInfo{ID: ToolGit}); err == nil {
		t.Fatal("expected error for tool without a release source")
	}
}
