package system

// PkgManager describes one detected OS package manager.
type PkgManager struct {
	Name string
	// installArgs builds the full argv for "install pkg non-interactively".
	installArgs func(pkg string) []string
	// NeedsRoot reports whether installs must run elevated.
	NeedsRoot bool
}

// InstallArgs returns the argv (program first) to install pkg.
func (m PkgManager) InstallArgs(pkg string) []string {
	return m.installArgs(pkg)
}

var pkgManagers = []PkgManager{
	{Name: "apt-get", NeedsRoot: true, installArgs: func(pkg string) []string {
		return []string{"apt-get", "install", "-y", pkg}
	}},
	{Name: "dnf", NeedsRoot: true, installArgs: func(pkg string) []string {
		return []string{"dnf", "install", "-y", pkg}
	}},
	{Name: "yum", NeedsRoot: true, installArgs: func(pkg string) []string {
		return []string{"yum", "install", "-y", pkg}
	}},
	{Name: "apk", NeedsRoot: true, installArgs: func(pkg string) []string {
		return []string{"apk", "add", pkg}
	}},
	{Name: "pacman", NeedsRoot: true, installArgs: func(pkg string) []string {
		return []string{"pacman", "-S", "--noconfirm", pkg}
	}},
	{Name: "brew", NeedsRoot: false, installArgs: func(pkg string) []string {
		return []string{"brew", "install", pkg}
	}},
}

// DetectPkgManager returns the first known package manager found on the
// search path. The second return is false when none is available.
func DetectPkgManager(r Runner) (PkgManager, bool) {
	for _, m := range pkgManagers {
		if _, ok := r.LookPath(m.Name); ok {
			return m, true
		}
	}
	return PkgManager{}, false
}
