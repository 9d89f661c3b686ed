// SPDX-License-Identifier: Apache-2.0

package gitmit

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runGit mirrors the shape of the teacher's setupRepository test helper in
// internal/gitinterface/common.go: shell out to the real git binary to
// build a small history, rather than hand-construct objects, since this
// test exercises the full Run() pipeline including the on-disk index and
// working tree.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// buildPathsBundle reproduces the "paths bundle" fixture spec.md §8
// describes: a repo with three/four committed first, then five created as
// a symlink to three, with five/four resolving through it.
func buildPathsBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")

	writeFile(t, dir, "three/four", "v1")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "add three/four")

	require.NoError(t, os.Symlink("three", filepath.Join(dir, "five")))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "add five -> three symlink")

	return dir
}

func TestRunAttributesSymlinkToTargetsCommitTime(t *testing.T) {
	dir := buildPathsBundle(t)

	result, err := Run(Options{RootFolder: dir, Consider: "."})
	require.NoError(t, err)

	require.Contains(t, result, "three/four")
	require.Contains(t, result, "five/four")
	require.Equal(t, result["three/four"], result["five/four"])
}

func TestRunExcludeStillKeepsSymlinkTarget(t *testing.T) {
	dir := buildPathsBundle(t)

	result, err := Run(Options{RootFolder: dir, Consider: ".", Exclude: []string{"three/**"}})
	require.NoError(t, err)

	require.NotContains(t, result, "three/four")
	require.Contains(t, result, "five/four")
}

func TestRunSubtreeRestrictsAndRerootsOutput(t *testing.T) {
	dir := buildPathsBundle(t)

	result, err := Run(Options{RootFolder: dir, Consider: "five"})
	require.NoError(t, err)

	require.Equal(t, map[string]int64{"four": result["four"]}, result)
}

func TestRunMergeWithNoChangesAttributesNothingToMergeCommit(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init", "-q", "-b", "main")

	// Distinct committer times, so each commit's attribution is observable.
	t.Setenv("GIT_COMMITTER_DATE", "1500000000 +0000")
	writeFile(t, dir, "a", "v1")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "base")

	t.Setenv("GIT_COMMITTER_DATE", "1500000100 +0000")
	runGit(t, dir, "checkout", "-q", "-b", "side")
	writeFile(t, dir, "b", "v1")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "add b on side")

	t.Setenv("GIT_COMMITTER_DATE", "1500000200 +0000")
	runGit(t, dir, "checkout", "-q", "main")
	runGit(t, dir, "merge", "-q", "--no-ff", "side", "-m", "merge side")

	firstResult, err := Run(Options{RootFolder: dir, Consider: "."})
	require.NoError(t, err)

	second, err := Run(Options{RootFolder: dir, Consider: ".", NoCache: true})
	require.NoError(t, err)

	require.Equal(t, firstResult["a"], second["a"])
	require.Equal(t, firstResult["b"], second["b"])
	require.NotEqual(t, firstResult["a"], firstResult["b"])
	require.Equal(t, int64(1500000100), firstResult["b"]) // the side commit's time, not the merge's
}
