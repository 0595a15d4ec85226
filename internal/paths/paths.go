package paths

import (
	"path/filepath"
)

// ResyncDirName is the per-repo directory holding config and state.
const ResyncDirName = ".resync"

// NormalizePath normalizes a path by converting backslashes to forward slashes.
// Rule patterns are matched against forward-slash paths on every platform.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// ResyncDir returns the repo-local state directory.
func ResyncDir(repoRoot string) string {
	return filepath.Join(repoRoot, ResyncDirName)
}

// HistoryDBPath returns the run-history database location.
func HistoryDBPath(repoRoot string) string {
	return filepath.Join(ResyncDir(repoRoot), "history.db")
}

// ConfigPath returns the main configuration file location.
func ConfigPath(repoRoot string) string {
	return filepath.Join(ResyncDir(repoRoot), "config.json")
}

// RulesPath returns the optional rules override file location.
func RulesPath(repoRoot string) string {
	return filepath.Join(ResyncDir(repoRoot), "rules.toml")
}
