// Package envprobe gathers the read-only environment facts the advisory
// engine consumes: marker-file presence, unified-tool availability, and the
// auto-execute opt-in. The engine itself never touches the filesystem or
// process environment.
package envprobe

import (
	"os"
	"path/filepath"

	"resync/internal/advisor"
)

// Target names what to probe for.
type Target struct {
	// LegacyMarker is the repo-relative path whose presence indicates a
	// provisioned legacy environment (e.g. ".venv").
	LegacyMarker string

	// UnifiedBinary is the executable whose presence on PATH selects
	// unified tooling (e.g. "devenv").
	UnifiedBinary string

	// AutoExecuteVar is the environment variable enabling auto-execution.
	// Any non-empty value counts as opted in.
	AutoExecuteVar string
}

// Prober builds an EnvironmentContext from the local machine. The lookup
// collaborators are injectable for tests.
type Prober struct {
	runner Runner
	stat   func(string) (os.FileInfo, error)
	getenv func(string) string
}

// NewProber creates a prober backed by the given runner and the real
// filesystem and process environment.
func NewProber(runner Runner) *Prober {
	return &Prober{
		runner: runner,
		stat:   os.Stat,
		getenv: os.Getenv,
	}
}

// NewProberWithLookups creates a fully injected prober for tests.
func NewProberWithLookups(runner Runner, stat func(string) (os.FileInfo, error), getenv func(string) string) *Prober {
	return &Prober{runner: runner, stat: stat, getenv: getenv}
}

// Probe collects the environment facts for one advisory pass. Marker paths
// are resolved against the repo root.
func (p *Prober) Probe(repoRoot string, target Target) advisor.EnvironmentContext {
	env := advisor.EnvironmentContext{}

	if target.LegacyMarker != "" {
		if _, err := p.stat(joinRepo(repoRoot, target.LegacyMarker)); err == nil {
			env.LegacyMarkerPresent = true
		}
	}

	if target.UnifiedBinary != "" {
		if _, err := p.runner.LookPath(target.UnifiedBinary); err == nil {
			env.UnifiedToolPresent = true
		}
	}

	if target.AutoExecuteVar != "" && p.getenv(target.AutoExecuteVar) != "" {
		env.AutoExecute = true
	}

	return env
}

// joinRepo resolves a repo-relative marker path; absolute markers are used
// as-is so operators can point at machine-wide locations.
func joinRepo(repoRoot, marker string) string {
	if filepath.IsAbs(marker) {
		return marker
	}
	return filepath.Join(repoRoot, marker)
}
