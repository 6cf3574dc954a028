package models

import (
	"fmt"
	"strings"
)

// BuildValueUnknown replaces build metadata the linker did not inject.
const BuildValueUnknown = "N/A"

// AppBuildInfo is the version, date and commit stamped into a binary with
// -ldflags "-X main.buildVersion=...".
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo trims the injected values and replaces empty ones with
// [BuildValueUnknown].
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// HasVersion reports whether a real version was injected at build time.
func (a AppBuildInfo) HasVersion() bool {
	return a.Version != "" && a.Version != BuildValueUnknown
}

// String renders the build info the way binaries print it on start.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		orUnknown(a.Version), orUnknown(a.Date), orUnknown(a.Commit))
}

func orUnknown(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return BuildValueUnknown
	}
	return v
}
