// Package version holds build-time metadata injected via ldflags.
package version

// Set at build time using -ldflags:
//
//	-X 'github.com/cursorbar/cursorbar/internal/version.Version=...'
//	-X 'github.com/cursorbar/cursorbar/internal/version.CommitHash=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + CommitHash + ")"
}
