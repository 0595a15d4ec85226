package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"resync/internal/history"
	"resync/internal/paths"
)

var (
	historyLimit  int
	historyFormat string
	exportOutput  string
	exportGzip    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded advisory runs",
	Long:  "Lists past advisory runs recorded in .resync/history.db, newest first.",
	Run:   runHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full run history as JSON",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, human, yaml)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	historyExportCmd.Flags().BoolVar(&exportGzip, "gzip", false, "Compress the export with gzip")
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

// HistoryResponseCLI contains recorded runs for CLI output
type HistoryResponseCLI struct {
	Runs []HistoryRunCLI `json:"runs" yaml:"runs"`
}

// HistoryRunCLI is one recorded run
type HistoryRunCLI struct {
	ID             string   `json:"id" yaml:"id"`
	CreatedAt      string   `json:"createdAt" yaml:"createdAt"`
	FromRev        string   `json:"fromRev" yaml:"fromRev"`
	ToRev          string   `json:"toRev" yaml:"toRev"`
	ChangedFiles   int      `json:"changedFiles" yaml:"changedFiles"`
	Fingerprint    string   `json:"fingerprint" yaml:"fingerprint"`
	Recommendation []string `json:"recommendation" yaml:"recommendation"`
	Tooling        string   `json:"tooling" yaml:"tooling"`
	Outcome        string   `json:"outcome" yaml:"outcome"`
	ExitStatus     int      `json:"exitStatus" yaml:"exitStatus"`
	AutoExecuted   bool     `json:"autoExecuted" yaml:"autoExecuted"`
}

func runHistory(cmd *cobra.Command, args []string) {
	store := mustOpenHistory()
	defer store.Close()

	runs, err := store.ListRuns(historyLimit)
	if err != nil {
		fatal(err)
	}

	resp := &HistoryResponseCLI{Runs: make([]HistoryRunCLI, 0, len(runs))}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, toHistoryRunCLI(r))
	}

	output, err := FormatResponse(resp, OutputFormat(historyFormat))
	if err != nil {
		fatal(err)
	}
	fmt.Println(output)
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store := mustOpenHistory()
	defer store.Close()

	runs, err := store.AllRuns()
	if err != nil {
		return err
	}

	items := make([]HistoryRunCLI, 0, len(runs))
	for _, r := range runs {
		items = append(items, toHistoryRunCLI(r))
	}

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if exportGzip {
		gz := gzip.NewWriter(w)
		defer gz.Close()
		w = gz
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func mustOpenHistory() *history.Store {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg)

	store, err := history.OpenStore(paths.HistoryDBPath(repoRoot), logger)
	if err != nil {
		fatal(err)
	}
	return store
}

func toHistoryRunCLI(r *history.Run) HistoryRunCLI {
	return HistoryRunCLI{
		ID:             r.ID,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
		FromRev:        r.FromRev,
		ToRev:          r.ToRev,
		ChangedFiles:   r.ChangedFiles,
		Fingerprint:    r.Fingerprint,
		Recommendation: r.Recommendation,
		Tooling:        r.Tooling,
		Outcome:        r.Outcome,
		ExitStatus:     r.ExitStatus,
		AutoExecuted:   r.AutoExecuted,
	}
}
