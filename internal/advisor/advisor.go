// Package advisor implements the post-merge advisory engine: it maps a set
// of changed file paths to a recommended remediation command, decides which
// tooling flavor should run it, and optionally hands the command to an
// executor.
package advisor

import "strings"

// Action is a remediation token. Its string value doubles as the command
// fragment appended to the invoker (e.g. "make install-py-dev").
type Action string

const (
	// InstallPyDev re-installs Python development dependencies.
	InstallPyDev Action = "install-py-dev"
	// InstallJsDev re-installs JavaScript development dependencies.
	InstallJsDev Action = "install-js-dev"
	// ApplyMigrations applies pending database migrations.
	ApplyMigrations Action = "apply-migrations"
)

// Rule pairs a path pattern with the action to recommend when a changed
// file matches it. Patterns are plain substrings, matched against
// slash-normalized repo-relative paths.
type Rule struct {
	Pattern string `json:"pattern" mapstructure:"pattern" toml:"pattern"`
	Action  Action `json:"action" mapstructure:"action" toml:"action"`
}

// Recommendation is the ordered, de-duplicated list of actions whose rule
// matched at least one changed path. Empty means no action is needed.
type Recommendation []Action

// Contains reports whether the recommendation already includes the action.
func (r Recommendation) Contains(a Action) bool {
	for _, existing := range r {
		if existing == a {
			return true
		}
	}
	return false
}

// Strings returns the actions as plain strings, for serialization.
func (r Recommendation) Strings() []string {
	out := make([]string, len(r))
	for i, a := range r {
		out[i] = string(a)
	}
	return out
}

// ComputeRecommendation evaluates rules against the changed paths.
//
// Rules are evaluated in their configured order and each contributes its
// action at most once, no matter how many paths match. The result order
// therefore follows rule declaration order, not path order; rule authors
// encode run-order policy (installs before migrations) in the rule list.
// Pure function: neither input is mutated and no-match is not an error.
func ComputeRecommendation(changed []string, rules []Rule) Recommendation {
	var rec Recommendation
	for _, rule := range rules {
		if rule.Pattern == "" {
			continue
		}
		for _, path := range changed {
			if strings.Contains(path, rule.Pattern) {
				if !rec.Contains(rule.Action) {
					rec = append(rec, rule.Action)
				}
				break
			}
		}
	}
	return rec
}
