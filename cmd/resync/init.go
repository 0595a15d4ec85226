package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"resync/internal/advisor"
	"resync/internal/config"
	"resync/internal/errors"
	"resync/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize resync configuration",
	Long:  "Creates a .resync/ directory with default configuration in the repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	repoRoot, err := getRepoRoot()
	if err != nil {
		return err
	}

	configPath := paths.ConfigPath(repoRoot)
	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		// Idempotent behavior: already initialized is success (CI-friendly)
		fmt.Println("resync already initialized.")
		fmt.Printf("Configuration at: %s\n", configPath)
		fmt.Println("\nRun 'resync init --force' to overwrite.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(repoRoot); err != nil {
		return errors.New(errors.InternalError, "Failed to write config file", err, nil)
	}

	if err := writeRulesTemplate(paths.RulesPath(repoRoot), cfg.Rules); err != nil {
		return errors.New(errors.InternalError, "Failed to write rules template", err, nil)
	}

	fmt.Println("resync initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Printf("Rule override template at: %s\n", paths.RulesPath(repoRoot))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'resync doctor' to check your setup")
	fmt.Println("  2. Run 'resync install-hook' to wire up the post-merge hook")

	return nil
}

// rulesDocument is the serialized shape of .resync/rules.toml.
type rulesDocument struct {
	Rules []advisor.Rule `toml:"rules"`
}

// writeRulesTemplate writes the rule override file seeded with the current
// effective rules. Editing it replaces the rule list wholesale.
func writeRulesTemplate(path string, rules []advisor.Rule) error {
	body, err := toml.Marshal(rulesDocument{Rules: rules})
	if err != nil {
		return err
	}

	header := []byte("# Ordered sync rules. When this file exists it replaces the rule list\n" +
		"# from config.json entirely. Declaration order is the run order.\n\n")

	return os.WriteFile(path, append(header, body...), 0644)
}
