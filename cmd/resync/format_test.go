package main

import (
	"strings"
	"testing"
)

func sampleRunResponse() *RunResponseCLI {
	return &RunResponseCLI{
		FromRev:        "ORIG_HEAD",
		ToRev:          "HEAD",
		ChangedFiles:   2,
		Recommendation: []string{"install-js-dev", "apply-migrations"},
		Tooling:        "legacy",
		Command:        "make install-js-dev apply-migrations",
		Outcome:        "skipped",
		SkipReason:     "not-configured",
	}
}

func TestFormatResponseJSON(t *testing.T) {
	out, err := FormatResponse(sampleRunResponse(), FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	for _, want := range []string{`"fromRev": "ORIG_HEAD"`, `"install-js-dev"`, `"tooling": "legacy"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatResponseYAML(t *testing.T) {
	out, err := FormatResponse(sampleRunResponse(), FormatYAML)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	for _, want := range []string{"fromRev: ORIG_HEAD", "tooling: legacy", "- install-js-dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatResponseHumanRun(t *testing.T) {
	out, err := FormatResponse(sampleRunResponse(), FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, "make install-js-dev apply-migrations") {
		t.Errorf("human output missing command:\n%s", out)
	}
	if !strings.Contains(out, "ORIG_HEAD..HEAD (2 changed files)") {
		t.Errorf("human output missing comparison line:\n%s", out)
	}
}

func TestFormatResponseHumanNoAction(t *testing.T) {
	resp := &RunResponseCLI{FromRev: "a", ToRev: "b", Tooling: "legacy", Outcome: "skipped"}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, "Nothing to sync.") {
		t.Errorf("expected no-action message:\n%s", out)
	}
}

func TestFormatResponseHumanDoctor(t *testing.T) {
	resp := &DoctorResponseCLI{
		Healthy: false,
		Checks: []DoctorCheckCLI{
			{Name: "git", Status: "pass", Message: "git executable found"},
			{Name: "config", Status: "fail", Message: "rule list is empty",
				SuggestedFixes: []FixActionCLI{{Type: "run-command", Command: "resync init --force", Description: "Regenerate the default configuration"}}},
		},
	}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, "Issues found") {
		t.Errorf("unhealthy header missing:\n%s", out)
	}
	if !strings.Contains(out, "$ resync init --force") {
		t.Errorf("suggested fix missing:\n%s", out)
	}
}

func TestFormatResponseUnknownFormat(t *testing.T) {
	if _, err := FormatResponse(sampleRunResponse(), OutputFormat("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatResponseUnknownTypeFallsBackToJSON(t *testing.T) {
	out, err := FormatResponse(map[string]int{"n": 1}, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(out, `"n": 1`) {
		t.Errorf("expected JSON fallback:\n%s", out)
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, valid := range []string{"json", "human", "yaml"} {
		got, err := ParseOutputFormat(valid)
		if err != nil {
			t.Errorf("ParseOutputFormat(%q) failed: %v", valid, err)
		}
		if string(got) != valid {
			t.Errorf("ParseOutputFormat(%q) = %q", valid, got)
		}
	}

	for _, invalid := range []string{"xml", "humann", ""} {
		if _, err := ParseOutputFormat(invalid); err == nil {
			t.Errorf("ParseOutputFormat(%q) should fail", invalid)
		}
	}
}
