// Package version provides build information for edh-power.
// Values can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/edh-power/internal/version.Version=v1.2.3"
package version

import "fmt"

var (
	// Version is the release version. Defaults to "dev".
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"
)

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// String returns the version and commit in a single line.
func String() string {
	return fmt.Sprintf("edh-power %s (%s)", Version, Commit)
}
