package buildinfo

import (
	"fmt"
	"runtime"
)

// Info holds structured build information suitable for JSON serialization.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
// Example: "ppp v1.2.0 (commit: a1b2c3d, built: 2026-10-19T10:00:00Z, go1.24.3)"
func (i Info) String() string {
	return fmt.Sprintf("ppp v%s (commit: %s, built: %s, %s)", i.Version, i.Commit, i.Date, i.GoVersion)
}
