package tools

import "testing"

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in   string
		want Version
		ok   bool
	}{
		{"1.2.3", Version{1, 2, 3}, true},
		{"v1.2.3", Version{1, 2, 3}, true},
		{"git version 2.43.0", Version{2, 43, 0}, true},
		{"tmux 3.4", Version{3, 4, 0}, true},
		{"code-server 4.89.1 5db3d4...\nwith Code 1.89.1", Version{4, 89, 1}, true},
		{"1.0.27 (Claude Code)", Version{1, 0, 27}, true},
		{"v1.30.2-rc.1", Version{1, 30, 2}, true},
		{"2.1.0+build.99", Version{2, 1, 0}, true},
		{"", Version{}, false},
		{"not a version", Version{}, false},
		{"nightly", Version{}, false},
	}
	for _, c := range cases {
		got, ok := ParseVersion(c.in)
		if ok != c.ok {
			t.Fatalf("ParseVersion(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ParseVersion(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestVersionLess(t *testing.T) {
	cases := []struct {
		a, b Version
		want bool
	}{
		{Version{1, 2, 0}, Version{1, 3, 0}, true},
		{Version{1, 3, 0}, Version{1, 2, 0}, false},
		{Version{1, 2, 3}, Version{1, 2, 3}, false},
		{Version{0, 9, 9}, Version{1, 0, 0}, true},
		{Version{2, 0, 0}, Version{1, 99, 99}, false},
		{Version{1, 2, 3}, Version{1, 2, 4}, true},
		{Version{10, 0, 0}, Version{9, 0, 0}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Fatalf("%v.Less(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

// Metadata-only differences must compare equal in both directions.
func TestVersionMetadataIgnored(t *testing.T) {
	a, _ := ParseVersion(NormalizeVersion("1.2.3-beta.1"))
	b, _ := ParseVersion(NormalizeVersion("1.2.3+build.7"))
	if a.Less(b) || b.Less(a) {
		t.Fatalf("metadata-only variants should be equal: %v vs %v", a, b)
	}
}

func TestNormalizeVersion(t *testing.T) {
	cases := map[string]string{
		"v1.2.3":         "1.2.3",
		"  1.2.3\n":      "1.2.3",
		"1.2.3-rc.2":     "1.2.3",
		"1.2.3+sha.abcd": "1.2.3",
	}
	for in, want := range cases {
		if got := NormalizeVersion(in); got != want {
			t.Fatalf("NormalizeVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
