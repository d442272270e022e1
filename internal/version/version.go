// Package version carries build information stamped in by the linker.
package version

import "fmt"

// Populated via -ldflags "-X github.com/dkoosis/parsetest/internal/version.Version=..." at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the build information for --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
