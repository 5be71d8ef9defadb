package version

import (
	"runtime/debug"
	"strings"
)

// String formats a human-friendly version line for CLI tools.
//
// It prefers the provided version/commit/date values (usually injected via
// -ldflags), falling back to Go module build info when those are unset or
// default placeholders.
func String(version string, commit string, date string) string {
	v := strings.TrimSpace(version)
	c := strings.TrimSpace(commit)
	d := strings.TrimSpace(date)

	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" || v == "dev" || v == "(devel)" {
			if mv := strings.TrimSpace(info.Main.Version); mv != "" && mv != "(devel)" {
				v = mv
			}
		}
		if c == "" || c == "unknown" {
			c = buildSetting(info, "vcs.revision")
		}
		if d == "" || d == "unknown" {
			d = buildSetting(info, "vcs.time")
		}
	}

	out := v
	if out == "" {
		out = "dev"
	}
	if c != "" && c != "unknown" {
		out += " (" + c + ")"
	}
	if d != "" && d != "unknown" {
		out += " " + d
	}
	return out
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
