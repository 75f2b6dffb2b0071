package tools

import (
	"fmt"
	"regexp"
	"strings"
)

// Version is a parsed semantic version triple. Pre-release and build
// metadata are stripped before parsing; two versions differing only in
// metadata compare equal.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports v < o under numeric triple ordering.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

var verRe = regexp.MustCompile(`(?i)\bv?(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts a version triple from free-form version-query
// output ("tmux 3.4", "git version 2.43.0", "code-server 4.89.1 ...").
// The boolean is false when no version can be found; callers treat that
// as "unknown" and skip reconciliation.
func ParseVersion(s string) (Version, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, false
	}
	// First line usually carries the version; fall back to the full output.
	for _, probe := range []string{strings.SplitN(s, "\n", 2)[0], s} {
		if m := verRe.FindStringSubmatch(probe); m != nil {
			v := Version{
				Major: atoiSafe(m[1]),
				Minor: atoiSafe(m[2]),
			}
			if m[3] != "" {
				v.Patch = atoiSafe(m[3])
			}
			return v, true
		}
	}
	return Version{}, false
}

// NormalizeVersion trims whitespace, a leading "v", and any pre-release
// or build metadata suffix.
func NormalizeVersion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")
	s = strings.SplitN(s, "-", 2)[0]
	s = strings.SplitN(s, "+", 2)[0]
	return s
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
