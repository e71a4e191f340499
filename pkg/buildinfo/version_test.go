package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestCurrent(t *testing.T) {
	info := Current()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.Go != runtime.Version() || info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("runtime fields = %q %q %q", info.Go, info.OS, info.Arch)
	}
}

func TestFillFromVCS(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	info := Info{Commit: "none", Date: "unknown"}
	fillFromVCS(&info, settings)
	if info.Commit != "abc123" || info.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("unstamped build: got %+v", info)
	}

	stamped := Info{Commit: "deadbeef", Date: "2025-12-31"}
	fillFromVCS(&stamped, settings)
	if stamped.Commit != "deadbeef" || stamped.Date != "2025-12-31" {
		t.Errorf("ldflags values should win: got %+v", stamped)
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "v1.0.0", Commit: "c", Date: "d", Go: "go1.25", OS: "linux", Arch: "amd64"}.String()
	want := "version: v1.0.0\ncommit: c\nbuilt: d\ngo: go1.25 linux/amd64"
	if s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.HasSuffix(tmpl, "\n") {
		t.Error("Template() should end with a newline")
	}
}
