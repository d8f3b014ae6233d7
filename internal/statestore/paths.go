package statestore

import (
	"os"
	"path/filepath"
	"runtime"
)

// StateDBPath maps an OS family to the expected location of Cursor's global
// state database. Pure mapping; callers are responsible for checking that
// the file actually exists.
func StateDBPath(goos, home, appData string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Cursor", "User", "globalStorage", "state.vscdb")
	case "windows":
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Cursor", "User", "globalStorage", "state.vscdb")
	default:
		return filepath.Join(home, ".config", "Cursor", "User", "globalStorage", "state.vscdb")
	}
}

// CandidatePaths returns the state DB locations to try on this host, most
// likely first. One path per OS family in practice.
func CandidatePaths() []string {
	home, _ := os.UserHomeDir()
	return []string{StateDBPath(runtime.GOOS, home, os.Getenv("APPDATA"))}
}
