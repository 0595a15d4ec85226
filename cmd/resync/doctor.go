package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"resync/internal/advisor"
	"resync/internal/config"
	"resync/internal/envprobe"
	"resync/internal/errors"
	"resync/internal/gitstate"
	"resync/internal/history"
	"resync/internal/paths"
	"resync/internal/slogutil"
)

var doctorFormat string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose resync setup issues",
	Long: `Checks that git is available, the current directory is a repository, the
configuration is valid, the sync toolchain can be detected, and the run
history store is writable.`,
	Run: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorFormat, "format", "human", "Output format (json, human, yaml)")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorResponseCLI contains diagnostic results for CLI output
type DoctorResponseCLI struct {
	Healthy bool             `json:"healthy" yaml:"healthy"`
	Checks  []DoctorCheckCLI `json:"checks" yaml:"checks"`
}

// DoctorCheckCLI represents a single diagnostic check
type DoctorCheckCLI struct {
	Name           string         `json:"name" yaml:"name"`
	Status         string         `json:"status" yaml:"status"` // "pass", "warn", "fail"
	Message        string         `json:"message" yaml:"message"`
	SuggestedFixes []FixActionCLI `json:"suggestedFixes,omitempty" yaml:"suggestedFixes,omitempty"`
}

// FixActionCLI represents a suggested fix
type FixActionCLI struct {
	Type        string `json:"type" yaml:"type"`
	Command     string `json:"command,omitempty" yaml:"command,omitempty"`
	Description string `json:"description" yaml:"description"`
	Safe        bool   `json:"safe" yaml:"safe"`
}

func runDoctor(cmd *cobra.Command, args []string) {
	resp := collectDoctorChecks()

	output, err := FormatResponse(resp, OutputFormat(doctorFormat))
	if err != nil {
		fatal(err)
	}
	fmt.Println(output)

	if !resp.Healthy {
		os.Exit(1)
	}
}

func collectDoctorChecks() *DoctorResponseCLI {
	resp := &DoctorResponseCLI{Healthy: true}
	runner := envprobe.NewCachingRunner(envprobe.NewSystemRunner(5 * time.Second))
	ctx := newContext()

	// git on PATH
	if _, err := runner.LookPath("git"); err != nil {
		resp.add("git", "fail", "git executable not found on PATH", []errors.FixAction{
			{Type: errors.InstallTool, Tool: "git", Description: "Install git"},
		})
		return resp
	}
	gitMsg := "git executable found"
	if v := envprobe.ToolVersion(ctx, runner, "git"); v != "" {
		gitMsg = v
	}
	resp.add("git", "pass", gitMsg, nil)

	// inside a repository
	cwd, err := os.Getwd()
	if err != nil {
		resp.add("repository", "fail", err.Error(), nil)
		return resp
	}
	repoRoot, err := gitstate.GetRepoRoot(cwd)
	if err != nil {
		resp.add("repository", "fail", "not inside a git repository",
			errors.GetSuggestedFixes(errors.NotARepository))
		return resp
	}
	resp.add("repository", "pass", "inside a git repository", nil)

	// configuration
	cfg, err := config.LoadConfig(repoRoot)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		resp.add("config", "fail", err.Error(), errors.GetSuggestedFixes(errors.ConfigInvalid))
		cfg = config.DefaultConfig()
	} else {
		resp.add("config", "pass", fmt.Sprintf("%d rules (source: %s)", len(cfg.Rules), cfg.RulesSource), nil)
	}

	// tooling detection
	prober := envprobe.NewProber(runner)
	env := prober.Probe(repoRoot, envprobe.Target{
		LegacyMarker:   cfg.Tooling.LegacyMarker,
		UnifiedBinary:  cfg.Tooling.UnifiedBinary,
		AutoExecuteVar: cfg.AutoExecuteEnv,
	})
	mode := advisor.SelectTooling(env)
	switch mode {
	case advisor.ToolingNeedsBootstrap:
		resp.add("tooling", "warn",
			fmt.Sprintf("no %q binary and no %q marker found", cfg.Tooling.UnifiedBinary, cfg.Tooling.LegacyMarker),
			[]errors.FixAction{{
				Type:        errors.RunCommand,
				Command:     cfg.Tooling.BootstrapCommand,
				Safe:        false,
				Description: "Bootstrap the development environment",
			}})
	default:
		msg := "mode: " + mode.String()
		if mode == advisor.ToolingUnified {
			if v := envprobe.ToolVersion(ctx, runner, cfg.Tooling.UnifiedBinary); v != "" {
				msg += " (" + v + ")"
			}
		}
		resp.add("tooling", "pass", msg, nil)
	}

	// merge base
	if gitstate.HasRev(repoRoot, gitstate.DefaultFromRev) {
		resp.add("merge-base", "pass", "ORIG_HEAD present", nil)
	} else {
		resp.add("merge-base", "warn", "no ORIG_HEAD yet (no merge or pull recorded)",
			errors.GetSuggestedFixes(errors.RevisionUnknown))
	}

	// history store
	store, err := history.OpenStore(paths.HistoryDBPath(repoRoot), slogutil.NewDiscardLogger())
	if err != nil {
		resp.add("history", "warn", "history store not writable: "+err.Error(),
			errors.GetSuggestedFixes(errors.HistoryUnavailable))
	} else {
		_ = store.Close()
		resp.add("history", "pass", "history store writable", nil)
	}

	// post-merge hook
	if gitDir, err := gitstate.GitDir(repoRoot); err == nil {
		hookPath := filepath.Join(gitDir, "hooks", "post-merge")
		if _, err := os.Stat(hookPath); err == nil {
			resp.add("hook", "pass", "post-merge hook installed", nil)
		} else {
			resp.add("hook", "warn", "no post-merge hook installed", []errors.FixAction{{
				Type:        errors.RunCommand,
				Command:     "resync install-hook",
				Safe:        false,
				Description: "Install the post-merge hook",
			}})
		}
	}

	return resp
}

// add appends a check and downgrades overall health on failures.
func (r *DoctorResponseCLI) add(name, status, message string, fixes []errors.FixAction) {
	cliFixes := make([]FixActionCLI, 0, len(fixes))
	for _, f := range fixes {
		cliFixes = append(cliFixes, FixActionCLI{
			Type:        string(f.Type),
			Command:     f.Command,
			Description: f.Description,
			Safe:        f.Safe,
		})
	}
	if status == "fail" {
		r.Healthy = false
	}
	r.Checks = append(r.Checks, DoctorCheckCLI{
		Name:           name,
		Status:         status,
		Message:        message,
		SuggestedFixes: cliFixes,
	})
}
