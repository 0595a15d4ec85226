package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --format flag value before any work runs.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatJSON, FormatHuman, FormatYAML:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML
func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *RunResponseCLI:
		return formatRunHuman(v)
	case *RulesResponseCLI:
		return formatRulesHuman(v)
	case *DoctorResponseCLI:
		return formatDoctorHuman(v)
	case *HistoryResponseCLI:
		return formatHistoryHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatRunHuman formats a RunResponseCLI in human-readable format
func formatRunHuman(resp *RunResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Compared: %s..%s (%d changed files)\n", resp.FromRev, resp.ToRev, resp.ChangedFiles))
	b.WriteString(fmt.Sprintf("Tooling: %s\n", resp.Tooling))

	if len(resp.Recommendation) == 0 {
		b.WriteString("Nothing to sync.\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Actions: %s\n", strings.Join(resp.Recommendation, ", ")))
	b.WriteString(fmt.Sprintf("Command: %s\n", resp.Command))
	b.WriteString(fmt.Sprintf("Outcome: %s\n", resp.Outcome))
	if resp.Outcome == "executed" {
		b.WriteString(fmt.Sprintf("Exit status: %d\n", resp.ExitStatus))
	}

	return b.String(), nil
}

// formatRulesHuman formats a RulesResponseCLI in human-readable format
func formatRulesHuman(resp *RulesResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Effective rules (source: %s)\n", resp.Source))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, r := range resp.Rules {
		b.WriteString(fmt.Sprintf("%d. %s -> %s\n", i+1, r.Pattern, r.Action))
	}

	b.WriteString("\nRules run in declaration order when composed into a command.\n")

	return b.String(), nil
}

// formatDoctorHuman formats a DoctorResponseCLI in human-readable format
func formatDoctorHuman(resp *DoctorResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("resync doctor\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	healthIcon := "✓"
	healthText := "All checks passed"
	if !resp.Healthy {
		healthIcon = "✗"
		healthText = "Issues found"
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", healthIcon, healthText))

	for _, check := range resp.Checks {
		var icon string
		switch check.Status {
		case "pass":
			icon = "✓"
		case "warn":
			icon = "⚠"
		case "fail":
			icon = "✗"
		default:
			icon = "?"
		}

		b.WriteString(fmt.Sprintf("%s %s: %s\n", icon, check.Name, check.Message))

		if len(check.SuggestedFixes) > 0 {
			b.WriteString("  Suggested fixes:\n")
			for _, fix := range check.SuggestedFixes {
				b.WriteString(fmt.Sprintf("    - %s\n", fix.Description))
				if fix.Command != "" {
					b.WriteString(fmt.Sprintf("      $ %s\n", fix.Command))
				}
			}
		}
	}

	return b.String(), nil
}

// formatHistoryHuman formats a HistoryResponseCLI in human-readable format
func formatHistoryHuman(resp *HistoryResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Run history (%d runs)\n", len(resp.Runs)))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, r := range resp.Runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s..%s\n", r.CreatedAt, id, r.FromRev, r.ToRev))
		b.WriteString(fmt.Sprintf("  files: %d, tooling: %s, outcome: %s\n", r.ChangedFiles, r.Tooling, r.Outcome))
		if len(r.Recommendation) > 0 {
			b.WriteString(fmt.Sprintf("  actions: %s\n", strings.Join(r.Recommendation, ", ")))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}
