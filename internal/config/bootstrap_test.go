package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"opptracker-engine/internal/config"
)

func TestEnsureUserConfigSeedsOnFirstRun(t *testing.T) {
	defaultPath := writeConfig(t, "app:\n  region_name: \"Massachusetts\"\n")
	dataDir := t.TempDir()

	userPath, err := config.EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	got, err := os.ReadFile(userPath)
	require.NoError(t, err)
	want, err := os.ReadFile(defaultPath)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEnsureUserConfigKeepsExistingFile(t *testing.T) {
	defaultPath := writeConfig(t, "app:\n  region_name: \"Massachusetts\"\n")
	dataDir := t.TempDir()

	userPath := filepath.Join(dataDir, "config.yml")
	edited := []byte("app:\n  region_name: \"Rhode Island\"\n")
	require.NoError(t, os.WriteFile(userPath, edited, 0o644))

	got, err := config.EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	require.Equal(t, userPath, got)

	body, err := os.ReadFile(userPath)
	require.NoError(t, err)
	require.Equal(t, edited, body, "user edits survive restarts")
}

func TestEnsureUserConfigMissingDefault(t *testing.T) {
	_, err := config.EnsureUserConfig(t.TempDir(), filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}
