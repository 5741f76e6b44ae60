// Package version holds build metadata for swatch, set at link time with
// -ldflags "-X github.com/jmylchreest/swatch/internal/version.<Name>=<value>".
package version

import (
	"fmt"
	"runtime"
)

// unset marks build metadata that was not provided at link time.
const unset = "unknown"

var (
	// Version is the semantic version of the release.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = unset

	// Date is the UTC build time, RFC3339.
	Date = unset

	// GoVersion is the toolchain that built the binary.
	GoVersion = runtime.Version()
)

// Info is the build metadata as a single value.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the build metadata.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// String returns the line printed by `swatch version`.
func String() string {
	info := GetInfo()
	if info.Commit != unset && info.Date != unset {
		return fmt.Sprintf("swatch version %s (commit: %s, built: %s, %s, %s)",
			info.Version, info.ShortCommit(), info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("swatch version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}

// Short returns just the version, for cobra's --version.
func Short() string {
	return Version
}
