// Package gitstate queries the local git repository for the facts the
// advisory engine needs: the repo root, merge revision markers, and the set
// of files changed between two revisions.
package gitstate

import (
	"os/exec"
	"strings"

	"resync/internal/errors"
	"resync/internal/paths"
)

// DefaultFromRev is the pre-merge head marker git leaves after a merge/pull.
const DefaultFromRev = "ORIG_HEAD"

// DefaultToRev is the post-merge head.
const DefaultToRev = "HEAD"

// ChangedFiles returns the repo-relative paths touched between two
// revisions, in git's output order, normalized to forward slashes.
// An empty result is valid (fast-forward with no file changes).
func ChangedFiles(repoRoot, fromRev, toRev string) ([]string, error) {
	output, err := runGit(repoRoot, "diff-tree", "-r", "--name-only", "--no-commit-id", fromRev, toRev)
	if err != nil {
		return nil, errors.New(
			errors.RevisionUnknown,
			"Failed to diff revisions "+fromRev+".."+toRev,
			err,
			errors.GetSuggestedFixes(errors.RevisionUnknown),
		)
	}

	if output == "" {
		return nil, nil
	}

	lines := strings.Split(output, "\n")
	changed := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		changed = append(changed, paths.NormalizePath(line))
	}
	return changed, nil
}

// ResolveRev resolves a revision name to a commit hash.
func ResolveRev(repoRoot, rev string) (string, error) {
	hash, err := runGit(repoRoot, "rev-parse", "--verify", rev)
	if err != nil {
		return "", errors.New(
			errors.RevisionUnknown,
			"Failed to resolve revision "+rev,
			err,
			errors.GetSuggestedFixes(errors.RevisionUnknown),
		)
	}
	return hash, nil
}

// HasRev reports whether the revision resolves in the repository.
// ORIG_HEAD does not exist until the first merge.
func HasRev(repoRoot, rev string) bool {
	_, err := runGit(repoRoot, "rev-parse", "--verify", rev)
	return err == nil
}

// IsGitRepository checks if the given path is a git repository
func IsGitRepository(repoRoot string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = repoRoot
	err := cmd.Run()
	return err == nil
}

// GetRepoRoot finds the git repository root from the given directory
func GetRepoRoot(startPath string) (string, error) {
	root, err := runGit(startPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.New(
			errors.NotARepository,
			"Not a git repository",
			err,
			errors.GetSuggestedFixes(errors.NotARepository),
		)
	}
	return root, nil
}

// GitDir returns the repository's .git directory (hooks live under it).
func GitDir(repoRoot string) (string, error) {
	dir, err := runGit(repoRoot, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", errors.New(
			errors.NotARepository,
			"Failed to locate the .git directory",
			err,
			nil,
		)
	}
	return dir, nil
}

// runGit executes git with the given arguments and returns trimmed stdout.
func runGit(repoRoot string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoRoot

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}
