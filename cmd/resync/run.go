package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"resync/internal/advisor"
	"resync/internal/config"
	"resync/internal/envprobe"
	"resync/internal/errors"
	"resync/internal/gitstate"
	"resync/internal/history"
	"resync/internal/paths"
	"resync/internal/shellexec"
)

var (
	runFrom      string
	runTo        string
	runAuto      bool
	runNoHistory bool
	runFormat    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advise on (or perform) environment sync after a merge",
	Long: `Compares two revisions, matches the changed paths against the configured
rules, and prints the sync command the change requires. This is the command
the installed post-merge hook invokes.

Auto-execution is off unless the opt-in environment variable (default
RESYNC_AUTO_RUN) is set, or --auto is passed. When the command executes,
its exit status is passed through unchanged.`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFrom, "from", "", "Revision before the sync (default: ORIG_HEAD)")
	runCmd.Flags().StringVar(&runTo, "to", "", "Revision after the sync (default: HEAD)")
	runCmd.Flags().BoolVar(&runAuto, "auto", false, "Execute the composed command instead of only printing it")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "Skip recording this run in history")
	runCmd.Flags().StringVar(&runFormat, "format", "human", "Output format (json, human, yaml)")
	rootCmd.AddCommand(runCmd)
}

// RunResponseCLI contains the result of one advisory pass for CLI output
type RunResponseCLI struct {
	FromRev        string   `json:"fromRev" yaml:"fromRev"`
	ToRev          string   `json:"toRev" yaml:"toRev"`
	ChangedFiles   int      `json:"changedFiles" yaml:"changedFiles"`
	Recommendation []string `json:"recommendation" yaml:"recommendation"`
	Tooling        string   `json:"tooling" yaml:"tooling"`
	Command        string   `json:"command,omitempty" yaml:"command,omitempty"`
	Outcome        string   `json:"outcome" yaml:"outcome"`
	SkipReason     string   `json:"skipReason,omitempty" yaml:"skipReason,omitempty"`
	ExitStatus     int      `json:"exitStatus" yaml:"exitStatus"`
}

func runRun(cmd *cobra.Command, args []string) {
	// Reject a bad --format before anything can execute.
	format, err := ParseOutputFormat(runFormat)
	if err != nil {
		fatal(err)
	}

	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)
	ctx := newContext()

	fromRev := runFrom
	toRev := runTo
	if toRev == "" {
		toRev = gitstate.DefaultToRev
	}
	if fromRev == "" {
		fromRev = gitstate.DefaultFromRev
		// A repo that never merged or pulled has no ORIG_HEAD. That is a
		// clean no-op for the hook path, not an error.
		if !gitstate.HasRev(repoRoot, fromRev) {
			logger.Info("No merge base recorded yet, nothing to compare", "rev", fromRev)
			return
		}
	} else if !gitstate.HasRev(repoRoot, fromRev) {
		fatal(errors.New(errors.RevisionUnknown, "Unknown revision: "+fromRev, nil,
			errors.GetSuggestedFixes(errors.RevisionUnknown)))
	}
	if !gitstate.HasRev(repoRoot, toRev) {
		fatal(errors.New(errors.RevisionUnknown, "Unknown revision: "+toRev, nil,
			errors.GetSuggestedFixes(errors.RevisionUnknown)))
	}

	changed, err := gitstate.ChangedFiles(repoRoot, fromRev, toRev)
	if err != nil {
		fatal(err)
	}

	rec := advisor.ComputeRecommendation(changed, cfg.Rules)

	prober := envprobe.NewProber(envprobe.NewSystemRunner(5 * time.Second))
	env := prober.Probe(repoRoot, envprobe.Target{
		LegacyMarker:   cfg.Tooling.LegacyMarker,
		UnifiedBinary:  cfg.Tooling.UnifiedBinary,
		AutoExecuteVar: cfg.AutoExecuteEnv,
	})
	if runAuto {
		env.AutoExecute = true
	}

	mode := advisor.SelectTooling(env)
	adv := advisor.RenderAdvisory(rec, mode, cfg.CommandSet())

	logger.Debug("Advisory computed",
		"changed", len(changed), "actions", len(rec), "tooling", mode.String())

	if format == FormatHuman && env.AutoExecute && !adv.Empty() {
		fmt.Printf("Running: %s\n", adv.Raw)
	}

	outcome := advisor.MaybeAutoExecute(ctx, adv, env.AutoExecute, shellexec.New(repoRoot))

	recordHistory(cfg, logger, repoRoot, fromRev, toRev, changed, rec, mode, outcome)

	if format == FormatHuman {
		// Hook-style output: print the decorated advisory, or nothing at all.
		if !adv.Empty() && !outcome.Executed() {
			fmt.Print(adv.Display)
		}
	} else {
		resp := newRunResponse(fromRev, toRev, changed, rec, mode, adv, outcome)
		output, err := FormatResponse(resp, format)
		if err != nil {
			fatal(err)
		}
		fmt.Println(output)
	}

	if outcome.Executed() {
		if outcome.ExitStatus < 0 {
			fatal(outcome.Err)
		}
		if outcome.ExitStatus != 0 {
			os.Exit(outcome.ExitStatus)
		}
	}
}

// newRunResponse shapes the advisory pass into the CLI response payload.
func newRunResponse(fromRev, toRev string, changed []string, rec advisor.Recommendation,
	mode advisor.ToolingMode, adv advisor.Advisory, outcome advisor.Outcome) *RunResponseCLI {
	return &RunResponseCLI{
		FromRev:        fromRev,
		ToRev:          toRev,
		ChangedFiles:   len(changed),
		Recommendation: rec.Strings(),
		Tooling:        mode.String(),
		Command:        adv.Raw,
		Outcome:        string(outcome.State),
		SkipReason:     string(outcome.Reason),
		ExitStatus:     outcome.ExitStatus,
	}
}

// recordHistory persists the run. History failures are logged and swallowed:
// a broken history store must never break the advisory itself.
func recordHistory(cfg *config.Config, logger *slog.Logger, repoRoot, fromRev, toRev string,
	changed []string, rec advisor.Recommendation, mode advisor.ToolingMode, outcome advisor.Outcome) {
	if runNoHistory || !cfg.History.Enabled {
		return
	}

	store, err := history.OpenStore(paths.HistoryDBPath(repoRoot), logger)
	if err != nil {
		logger.Warn("History store unavailable", "error", err)
		return
	}
	defer store.Close()

	run := history.NewRun(fromRev, toRev, changed, rec, mode, outcome)
	if prev, err := store.LastRunForFingerprint(run.Fingerprint); err == nil && prev != nil {
		logger.Debug("Changeset seen before", "lastRunId", prev.ID, "lastOutcome", prev.Outcome)
	}
	if err := store.RecordRun(run); err != nil {
		logger.Warn("Failed to record run", "error", err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
