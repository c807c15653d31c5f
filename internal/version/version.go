// Package version exposes the build version stamped at link time.
package version

// Version is overridden at build time via
// -ldflags "-X github.com/eduplat/campus-cli/internal/version.Version=v1.2.3".
var Version = "dev"
