package advisor

// EnvironmentContext carries the external facts the engine consults when
// choosing a tooling mode. Callers gather these up front (see envprobe);
// the engine never reads the environment itself.
type EnvironmentContext struct {
	// LegacyMarkerPresent is true when the legacy virtualenv marker
	// (typically .venv) exists in the repo root.
	LegacyMarkerPresent bool `json:"legacyMarkerPresent"`

	// UnifiedToolPresent is true when the unified sync binary is on PATH.
	UnifiedToolPresent bool `json:"unifiedToolPresent"`

	// AutoExecute is true when the auto-execute opt-in is set.
	AutoExecute bool `json:"autoExecute"`
}

// ToolingMode identifies which synchronization toolchain applies.
type ToolingMode string

const (
	// ToolingUnified means the unified sync tool supersedes per-concern
	// commands; a single sync invocation covers everything.
	ToolingUnified ToolingMode = "unified"

	// ToolingNeedsBootstrap means no usable legacy environment exists yet;
	// it must be provisioned before any remediation can run.
	ToolingNeedsBootstrap ToolingMode = "needs-bootstrap"

	// ToolingLegacy means the legacy virtualenv is present and per-concern
	// make targets apply.
	ToolingLegacy ToolingMode = "legacy"
)

// String returns the mode name.
func (m ToolingMode) String() string {
	return string(m)
}

// SelectTooling picks the tooling mode from the environment. The priority
// is fixed: a present unified tool always wins, then a missing legacy
// marker forces bootstrap, and only then is the legacy environment assumed
// usable.
func SelectTooling(env EnvironmentContext) ToolingMode {
	if env.UnifiedToolPresent {
		return ToolingUnified
	}
	if !env.LegacyMarkerPresent {
		return ToolingNeedsBootstrap
	}
	return ToolingLegacy
}
