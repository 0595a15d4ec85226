package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resync/internal/errors"
	"resync/internal/gitstate"
)

var hookForce bool

var installHookCmd = &cobra.Command{
	Use:   "install-hook",
	Short: "Install the post-merge hook",
	Long: `Writes a post-merge hook into .git/hooks that invokes 'resync run' after
every merge or pull. An existing hook that resync did not write is left
alone unless --force is passed.`,
	RunE: runInstallHook,
}

func init() {
	installHookCmd.Flags().BoolVarP(&hookForce, "force", "f", false, "Overwrite an existing post-merge hook")
	rootCmd.AddCommand(installHookCmd)
}

// hookMarker identifies hooks written by resync.
const hookMarker = "# installed by resync"

func runInstallHook(cmd *cobra.Command, args []string) error {
	repoRoot, err := getRepoRoot()
	if err != nil {
		return err
	}

	gitDir, err := gitstate.GitDir(repoRoot)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return errors.New(errors.InternalError, "Failed to locate the resync binary", err, nil)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	hookPath := filepath.Join(gitDir, "hooks", "post-merge")
	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), hookMarker) && !hookForce {
			return errors.New(errors.HookExists,
				"A post-merge hook already exists and was not written by resync", nil,
				errors.GetSuggestedFixes(errors.HookExists)).
				WithDetails(map[string]interface{}{"path": hookPath})
		}
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return errors.New(errors.InternalError, "Failed to create hooks directory", err, nil)
	}

	if err := os.WriteFile(hookPath, []byte(hookScript(exe)), 0755); err != nil {
		return errors.New(errors.InternalError, "Failed to write hook", err, nil)
	}

	fmt.Printf("Installed post-merge hook at: %s\n", hookPath)
	return nil
}

// hookScript renders the hook body for the given binary path.
func hookScript(exePath string) string {
	return "#!/bin/sh\n" +
		hookMarker + "\n" +
		fmt.Sprintf("exec %q run\n", exePath)
}
