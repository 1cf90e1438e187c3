package goldenscript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, defaultPattern, cfg.Pattern)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.Update)
}

func TestLoadProjectConfigFromTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(`
dir = "scripts"
pattern = "*.gs"
update = true
log_level = "debug"
`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scripts"), cfg.Dir)
	assert.Equal(t, "*.gs", cfg.Pattern)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Update)
}

func TestDiscoverScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.golden"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.golden"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.golden"), 0o755))

	cfg, err := LoadProjectConfig(dir)
	require.NoError(t, err)

	paths, err := cfg.DiscoverScripts()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "a.golden"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.golden"), paths[1])
}
