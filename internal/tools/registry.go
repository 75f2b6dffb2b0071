package tools

// Tools is the fixed provisioning set, in run order. The version-control
// client and the multiplexer are prerequisites for everything after them.
var Tools = []ToolInfo{
	{
		ID:          ToolGit,
		DisplayName: "Git",
		Binaries:    []string{"git"},
		VersionArgs: [][]string{{"--version"}},
		PkgName:     "git",
		Required:    true,
	},
	{
		ID:          ToolTmux,
		DisplayName: "tmux",
		Binaries:    []string{"tmux"},
		VersionArgs: [][]string{{"-V"}},
		PkgName:     "tmux",
		Required:    true,
	},
	{
		ID:          ToolAgent,
		DisplayName: "Claude Code (@anthropic-ai/claude-code)",
		Binaries:    []string{"claude", "claude-code"},
		VersionArgs: [][]string{{"--version"}, {"-v"}, {"version"}},
		Package:     "@anthropic-ai/claude-code",
		Required:    true,
	},
	{
		ID:          ToolDaemon,
		DisplayName: "workspaced helper daemon",
		Binaries:    []string{"workspaced"},
		ExtraPaths:  []string{"$HOME/.local/bin/workspaced"},
		VersionArgs: [][]string{{"--version"}},
		GithubRepo:  "workspacectl/workspaced",
		DownloadURL: "https://github.com/workspacectl/workspaced/releases/download/v{version}/workspaced-{os}-{arch}",
	},
	{
		ID:          ToolKubectl,
		DisplayName: "kubectl",
		Binaries:    []string{"kubectl"},
		VersionArgs: [][]string{{"version", "--client", "--output=yaml"}},
		LatestURL:   "https://dl.k8s.io/release/stable.txt",
		DownloadURL: "https://dl.k8s.io/release/v{version}/bin/{os}/{arch}/kubectl",
	},
	{
		ID:          ToolCodeServer,
		DisplayName: "code-server",
		Binaries:    []string{"code-server"},
		ExtraPaths:  []string{"$HOME/.local/bin/code-server"},
		VersionArgs: [][]string{{"--version"}},
		GithubRepo:  "coder/code-server",
		ScriptURL:   "https://code-server.dev/install.sh",
	},
}

// ByID returns the registry entry for id. The second return is false
// for unknown ids.
func ByID(id ToolID) (ToolInfo, bool) {
	for _, t := range Tools {
		if t.ID == id {
			return t, true
		}
	}
	return ToolInfo{}, false
}
