package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalPathOverrideDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	assert.Equal(t, filepath.Join(dir, "config.toml"), GlobalPath())
}

func TestGlobalPathPrefersExistingCandidate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("general:\n"), 0o644))

	assert.Equal(t, yamlPath, GlobalPath())
}

func TestGlobalPathCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0o644))

	// TOML wins when both exist.
	assert.Equal(t, filepath.Join(dir, "config.toml"), GlobalPath())
}

func TestGlobalPathConventionalDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(ConfigDirEnv, "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	want := filepath.Join(home, ".config", "taskwright", "config.toml")
	assert.Equal(t, want, GlobalPath())
}

func TestGlobalPathLegacyDotfile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(ConfigDirEnv, "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	legacy := filepath.Join(home, ".taskwright.toml")
	require.NoError(t, os.WriteFile(legacy, []byte(""), 0o644))

	// Only the legacy dotfile exists, so it wins.
	assert.Equal(t, legacy, GlobalPath())

	// Once the conventional file exists it takes precedence again.
	conventional := filepath.Join(home, ".config", "taskwright", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(conventional), 0o755))
	require.NoError(t, os.WriteFile(conventional, []byte(""), 0o644))
	assert.Equal(t, conventional, GlobalPath())
}

func TestLocalPath(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, filepath.Join(root, ".taskwright", "config.toml"), LocalPath(root))

	yamlPath := filepath.Join(root, ".taskwright", "config.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(yamlPath), 0o755))
	require.NoError(t, os.WriteFile(yamlPath, []byte(""), 0o644))
	assert.Equal(t, yamlPath, LocalPath(root))
}
