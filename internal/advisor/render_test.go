package advisor

import (
	"strings"
	"testing"
)

func testCommandSet() CommandSet {
	return CommandSet{
		Invoker:          "make",
		UnifiedCommand:   "devenv sync",
		BootstrapCommand: "make setup-venv",
	}
}

func TestRenderAdvisoryEmptyRecommendation(t *testing.T) {
	for _, mode := range []ToolingMode{ToolingUnified, ToolingLegacy, ToolingNeedsBootstrap} {
		t.Run(string(mode), func(t *testing.T) {
			adv := RenderAdvisory(nil, mode, testCommandSet())
			if !adv.Empty() {
				t.Errorf("expected no-action sentinel for empty recommendation under %s, got %+v", mode, adv)
			}
		})
	}
}

func TestRenderAdvisoryLegacy(t *testing.T) {
	rec := Recommendation{InstallPyDev, InstallJsDev, ApplyMigrations}
	adv := RenderAdvisory(rec, ToolingLegacy, testCommandSet())

	expected := "make install-py-dev install-js-dev apply-migrations"
	if adv.Raw != expected {
		t.Errorf("Raw = %q, expected %q", adv.Raw, expected)
	}
	if !strings.Contains(adv.Display, expected) {
		t.Errorf("Display should contain the raw command, got %q", adv.Display)
	}
}

func TestRenderAdvisorySingleAction(t *testing.T) {
	rec := ComputeRecommendation([]string{"yarn.lock"}, []Rule{
		{Pattern: "requirements-dev-frozen.txt", Action: InstallPyDev},
		{Pattern: "yarn.lock", Action: InstallJsDev},
		{Pattern: "migrations", Action: ApplyMigrations},
	})

	adv := RenderAdvisory(rec, ToolingLegacy, testCommandSet())
	if adv.Raw != "make install-js-dev" {
		t.Errorf("Raw = %q, expected %q", adv.Raw, "make install-js-dev")
	}
}

func TestRenderAdvisoryUnified(t *testing.T) {
	rec := Recommendation{InstallPyDev, ApplyMigrations}
	adv := RenderAdvisory(rec, ToolingUnified, testCommandSet())

	// Under unified tooling the single sync command replaces all fragments.
	if adv.Raw != "devenv sync" {
		t.Errorf("Raw = %q, expected %q", adv.Raw, "devenv sync")
	}
}

func TestRenderAdvisoryNeedsBootstrap(t *testing.T) {
	rec := Recommendation{InstallPyDev}
	adv := RenderAdvisory(rec, ToolingNeedsBootstrap, testCommandSet())

	if adv.Raw != "make install-py-dev" {
		t.Errorf("Raw = %q, expected %q", adv.Raw, "make install-py-dev")
	}
	if !strings.Contains(adv.Display, "make setup-venv") {
		t.Errorf("Display should mention the bootstrap command, got %q", adv.Display)
	}
}

func TestRenderAdvisoryRawIsUndecorated(t *testing.T) {
	adv := RenderAdvisory(Recommendation{InstallJsDev}, ToolingLegacy, testCommandSet())

	if strings.Contains(adv.Raw, "\033") {
		t.Errorf("Raw must not carry ANSI escapes: %q", adv.Raw)
	}
	if !strings.Contains(adv.Display, "\033") {
		t.Errorf("Display should be colorized: %q", adv.Display)
	}
}
