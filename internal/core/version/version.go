// Package version reports build metadata
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo is the build metadata served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Set with -ldflags "-X commentedit/internal/core/version.version=v0.1.0 -X ...commit=abcd -X ...date=2026-01-02"
var (
	service = "commentedit-api"
	version = "dev"
	commit  = ""
	date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Info returns the build metadata; commit falls back to the embedded vcs revision
func Info() BuildInfo {
	c := commit
	if c == "" {
		c = "none"
		if bi, ok := readBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					c = s.Value
				}
			}
		}
	}
	return BuildInfo{Service: service, Version: version, Commit: c, Date: date, Go: runtime.Version()}
}
