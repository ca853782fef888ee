// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/bnema/paperswipe/internal/version.Version=...".
package version

var Version = "dev"
