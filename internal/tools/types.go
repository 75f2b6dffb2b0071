package tools

// Tool identifiers and metadata
type ToolID string

const (
	ToolGit        ToolID = "git"
	ToolTmux       ToolID = "tmux"
	ToolAgent      ToolID = "claude"
	ToolDaemon     ToolID = "workspaced"
	ToolKubectl    ToolID = "kubectl"
	ToolCodeServer ToolID = "code-server"
)

// ToolInfo is the static descriptor for one provisioned tool: how to
// detect it, how to install it, and (optionally) where its latest
// version is published. Immutable during a run.
type ToolInfo struct {
	ID          ToolID
	DisplayName string
	Binaries    []string // candidate binary names in PATH
	ExtraPaths  []string // well-known install locations off the PATH ($HOME expanded)
	VersionArgs [][]string

	Package     string // npm package name (install + latest via registry)
	PkgName     string // OS package manager name
	LatestURL   string // plain-text latest-version endpoint
	GithubRepo  string // owner/repo for the releases API
	DownloadURL string // artifact template with {version} {os} {arch}
	ScriptURL   string // vendor install script

	// Required tools abort the run when they cannot be installed;
	// the rest are best-effort.
	Required bool
}

// Check results
type CheckResult struct {
	Installed bool
	Version   string
	Source    string // which probe produced the version (binary/path/npm)
	Latest    string // latest version from the tool's release source
	Err       string
}
