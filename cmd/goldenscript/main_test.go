package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTargetsExpandsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.golden"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	targets, err := resolveTargets([]string{dir})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, filepath.Join(dir, "a.golden"), targets[0])
}

func TestResolveTargetsPassesThroughFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.golden")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	targets, err := resolveTargets([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, targets)
}

func TestSuggestSubcommandFuzzyMatches(t *testing.T) {
	root := newRootCommand()
	err := suggestSubcommand(root, []string{"rn"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "run"`)
}

func TestSuggestSubcommandRequiresOne(t *testing.T) {
	root := newRootCommand()
	err := suggestSubcommand(root, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a subcommand is required")
}

func TestRunBareTargetFallsBackToProjectDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goldenscript.toml"), []byte(`
update = true
log_level = "debug"
`), 0o644))

	// No scripts in dir, so runPaths has nothing to run and returns nil;
	// this only exercises that the project defaults are read without error
	// when no CLI flag overrides them.
	info, err := os.Stat(dir)
	require.NoError(t, err)
	err = runBareTarget(config{logLevel: defaultLogLevelFlag, update: false}, dir, info)
	require.NoError(t, err)
}
