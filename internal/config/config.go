package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"resync/internal/advisor"
	"resync/internal/errors"
	"resync/internal/paths"
)

// Config represents the complete resync configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// Rules is the ordered rule list; declaration order is the run order
	// of the composed command.
	Rules []advisor.Rule `json:"rules" mapstructure:"rules"`

	Tooling ToolingConfig `json:"tooling" mapstructure:"tooling"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// AutoExecuteEnv names the opt-in variable for auto-execution.
	AutoExecuteEnv string `json:"autoExecuteEnv" mapstructure:"autoExecuteEnv"`

	// RulesSource records where the effective rules came from
	// (defaults, config, rules.toml). Not persisted.
	RulesSource string `json:"-" mapstructure:"-"`
}

// ToolingConfig describes how to detect and drive the sync toolchain
type ToolingConfig struct {
	LegacyMarker     string `json:"legacyMarker" mapstructure:"legacyMarker"`
	UnifiedBinary    string `json:"unifiedBinary" mapstructure:"unifiedBinary"`
	Invoker          string `json:"invoker" mapstructure:"invoker"`
	UnifiedCommand   string `json:"unifiedCommand" mapstructure:"unifiedCommand"`
	BootstrapCommand string `json:"bootstrapCommand" mapstructure:"bootstrapCommand"`
}

// HistoryConfig controls run-history recording
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file,omitempty" mapstructure:"file"`
}

// CommandSet returns the advisor command set derived from the tooling config.
func (c *Config) CommandSet() advisor.CommandSet {
	return advisor.CommandSet{
		Invoker:          c.Tooling.Invoker,
		UnifiedCommand:   c.Tooling.UnifiedCommand,
		BootstrapCommand: c.Tooling.BootstrapCommand,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Rules: []advisor.Rule{
			{Pattern: "requirements-dev-frozen.txt", Action: advisor.InstallPyDev},
			{Pattern: "yarn.lock", Action: advisor.InstallJsDev},
			{Pattern: "migrations", Action: advisor.ApplyMigrations},
		},
		Tooling: ToolingConfig{
			LegacyMarker:     ".venv",
			UnifiedBinary:    "devenv",
			Invoker:          "make",
			UnifiedCommand:   "devenv sync",
			BootstrapCommand: "make setup-venv",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		AutoExecuteEnv: "RESYNC_AUTO_RUN",
		RulesSource:    "defaults",
	}
}

// LoadConfig loads configuration from .resync/config.json, falling back to
// defaults when the file is absent, then applies the optional rules.toml
// override.
func LoadConfig(repoRoot string) (*Config, error) {
	cfg, err := loadMainConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	if err := applyRulesOverride(repoRoot, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadMainConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(paths.ResyncDir(repoRoot))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, errors.New(errors.ConfigInvalid, "Failed to read config.json", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "Failed to parse config.json", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}
	cfg.RulesSource = "config"

	return cfg, nil
}

// rulesFile is the shape of the optional .resync/rules.toml override.
type rulesFile struct {
	Rules []advisor.Rule `toml:"rules"`
}

// applyRulesOverride replaces the rule list wholesale when rules.toml
// exists. Partial merging is deliberately unsupported: rule order is the
// policy, and merging two ordered lists would hide it.
func applyRulesOverride(repoRoot string, cfg *Config) error {
	path := paths.RulesPath(repoRoot)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var rf rulesFile
	if _, err := toml.DecodeFile(path, &rf); err != nil {
		return errors.New(errors.ConfigInvalid, "Failed to parse rules.toml", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	cfg.Rules = rf.Rules
	cfg.RulesSource = "rules.toml"
	return nil
}

// Save writes the configuration to .resync/config.json
func (c *Config) Save(repoRoot string) error {
	dir := paths.ResyncDir(repoRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.New(errors.ConfigInvalid, "Unsupported config version", nil,
			errors.GetSuggestedFixes(errors.ConfigInvalid)).
			WithDetails(map[string]interface{}{"version": c.Version})
	}

	if len(c.Rules) == 0 {
		return errors.New(errors.ConfigInvalid, "Rule list is empty", nil,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	for i, rule := range c.Rules {
		if rule.Pattern == "" || rule.Action == "" {
			return errors.New(errors.ConfigInvalid, "Rule has an empty pattern or action", nil,
				errors.GetSuggestedFixes(errors.ConfigInvalid)).
				WithDetails(map[string]interface{}{"index": i})
		}
	}

	if c.Tooling.Invoker == "" {
		return errors.New(errors.ConfigInvalid, "Tooling invoker is empty", nil,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	return nil
}
