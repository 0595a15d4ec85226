package envprobe

import (
	"os"
	"path/filepath"
	"testing"
)

func testTarget() Target {
	return Target{
		LegacyMarker:   ".venv",
		UnifiedBinary:  "devenv",
		AutoExecuteVar: "RESYNC_AUTO_RUN",
	}
}

func TestProbeLegacyMarker(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".venv"), 0755); err != nil {
		t.Fatal(err)
	}

	prober := NewProberWithLookups(NewMockRunner(), os.Stat, func(string) string { return "" })
	env := prober.Probe(root, testTarget())

	if !env.LegacyMarkerPresent {
		t.Error("expected LegacyMarkerPresent for existing .venv")
	}
	if env.UnifiedToolPresent {
		t.Error("expected UnifiedToolPresent to be false without the binary")
	}
	if env.AutoExecute {
		t.Error("expected AutoExecute to be false without the env var")
	}
}

func TestProbeMissingMarker(t *testing.T) {
	prober := NewProberWithLookups(NewMockRunner(), os.Stat, func(string) string { return "" })
	env := prober.Probe(t.TempDir(), testTarget())

	if env.LegacyMarkerPresent {
		t.Error("expected LegacyMarkerPresent to be false")
	}
}

func TestProbeUnifiedBinary(t *testing.T) {
	runner := NewMockRunner()
	runner.SetLookPath("devenv", "/usr/local/bin/devenv")

	prober := NewProberWithLookups(runner, os.Stat, func(string) string { return "" })
	env := prober.Probe(t.TempDir(), testTarget())

	if !env.UnifiedToolPresent {
		t.Error("expected UnifiedToolPresent when the binary is on PATH")
	}
}

func TestProbeAutoExecuteVar(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "unset", value: "", expected: false},
		{name: "set to 1", value: "1", expected: true},
		{name: "any non-empty value counts", value: "no", expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			getenv := func(key string) string {
				if key == "RESYNC_AUTO_RUN" {
					return tc.value
				}
				return ""
			}
			prober := NewProberWithLookups(NewMockRunner(), os.Stat, getenv)
			env := prober.Probe(t.TempDir(), testTarget())

			if env.AutoExecute != tc.expected {
				t.Errorf("AutoExecute = %v, expected %v for value %q", env.AutoExecute, tc.expected, tc.value)
			}
		})
	}
}

func TestProbeEmptyTargetFields(t *testing.T) {
	// Unconfigured probe targets are skipped rather than probed with
	// empty names.
	prober := NewProberWithLookups(NewMockRunner(), os.Stat, func(string) string { return "yes" })
	env := prober.Probe(t.TempDir(), Target{})

	if env.LegacyMarkerPresent || env.UnifiedToolPresent || env.AutoExecute {
		t.Errorf("expected zero context for empty target, got %+v", env)
	}
}

func TestMockRunnerLookPath(t *testing.T) {
	runner := NewMockRunner()
	runner.SetLookPath("devenv", "/opt/devenv")

	path, err := runner.LookPath("devenv")
	if err != nil || path != "/opt/devenv" {
		t.Errorf("LookPath = (%q, %v), expected configured path", path, err)
	}

	if _, err := runner.LookPath("missing"); err == nil {
		t.Error("expected error for unconfigured binary")
	}
}
