package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"workspacectl/internal/system"
)

const fetchTimeout = 6 * time.Second

// githubAPI is overridable in tests.
var githubAPI = "https://api.github.com"

var httpClient = &http.Client{Timeout: fetchTimeout}

// LatestVersion resolves the newest published version for t from its
// configured release source: the npm registry, a plain-text "stable"
// endpoint, or the GitHub releases API. Tools with no source return
// an error; the reconciler treats any error here as "skip, keep the
// installed version".
func LatestVersion(ctx context.Context, r system.Runner, t ToolInfo) (string, error) {
	switch {
	case t.Package != "":
		return npmLatestVersion(ctx, r, t.Package)
	case t.LatestURL != "":
		return fetchText(ctx, t.LatestURL)
	case t.GithubRepo != "":
		return githubLatestTag(ctx, t.GithubRepo)
	}
	return "", fmt.Errorf("%s: no latest-version source", t.ID)
}

// npmLatestVersion queries the npm registry for the latest dist-tag.
func npmLatestVersion(ctx context.Context, r system.Runner, pkg string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	out, err := r.Run(cctx, "npm", "view", pkg, "version", "--json")
	if err != nil && out == "" {
		return "", err
	}
	s := strings.TrimSpace(out)
	// npm may return a bare JSON string like "1.2.3" or plain 1.2.3
	var v string
	if json.Unmarshal([]byte(s), &v) == nil && v != "" {
		return v, nil
	}
	if line := strings.SplitN(s, "\n", 2)[0]; line != "" {
		return strings.Trim(line, "\""), nil
	}
	return "", errors.New("empty npm registry response")
}

// npmInstalledVersion queries npm for a globally installed package.
func npmInstalledVersion(ctx context.Context, r system.Runner, pkg string) (string, error) {
	out, err := r.Run(ctx, "npm", "ls", "-g", "--depth=0", pkg, "--json")
	if err != nil && out == "" {
		return "", err
	}
	var data struct {
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return "", err
	}
	if d, ok := data.Dependencies[pkg]; ok {
		return d.Version, nil
	}
	return "", fmt.Errorf("package not found: %s", pkg)
}

// fetchText GETs a plain-text endpoint such as dl.k8s.io/release/stable.txt.
func fetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// githubLatestTag resolves the tag name of a repository's latest release.
func githubLatestTag(ctx context.Context, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPI, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	var rel struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", err
	}
	if rel.TagName == "" {
		return "", errors.New("release has no tag name")
	}
	return rel.TagName, nil
}
