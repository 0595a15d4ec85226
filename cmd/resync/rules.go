package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the effective rule list",
	Long: `Prints the rules currently in effect and where they came from: built-in
defaults, .resync/config.json, or the .resync/rules.toml override.`,
	Run: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "human", "Output format (json, human, yaml)")
	rootCmd.AddCommand(rulesCmd)
}

// RulesResponseCLI contains the effective rule list for CLI output
type RulesResponseCLI struct {
	Source string        `json:"source" yaml:"source"`
	Rules  []RuleItemCLI `json:"rules" yaml:"rules"`
}

// RuleItemCLI is one pattern/action pair
type RuleItemCLI struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Action  string `json:"action" yaml:"action"`
}

func runRules(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)

	resp := &RulesResponseCLI{
		Source: cfg.RulesSource,
		Rules:  make([]RuleItemCLI, 0, len(cfg.Rules)),
	}
	for _, r := range cfg.Rules {
		resp.Rules = append(resp.Rules, RuleItemCLI{
			Pattern: r.Pattern,
			Action:  string(r.Action),
		})
	}

	output, err := FormatResponse(resp, OutputFormat(rulesFormat))
	if err != nil {
		fatal(err)
	}
	fmt.Println(output)
}
