package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgang/pressgang/internal/config"
)

func newTestCmd(t *testing.T, configPath string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", config.DefaultConfigPath, "")
	cmd.Flags().String("repo_id", "", "")
	cmd.Flags().String("content_dir", "", "")
	cmd.Flags().String("server_url", "", "")
	cmd.Flags().String("state_backend", "", "")
	require.NoError(t, cmd.Flags().Set("config", configPath))
	return cmd
}

func writeTestConfig(t *testing.T, contentDir string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	body := fmt.Sprintf(`{
		"repo_id": "acme-blog",
		"content_dir": %q,
		"server_url": "https://press.example.com"
	}`, contentDir)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	contentDir := t.TempDir()
	cmd := newTestCmd(t, writeTestConfig(t, contentDir))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "acme-blog", cfg.RepoID)
	assert.Equal(t, "acme-blog", cfg.RepoName)
	assert.Equal(t, contentDir, cfg.ContentDir)
	assert.Equal(t, config.StateBackendRemote, cfg.StateBackend)
	assert.Equal(t, config.DefaultMaxConcurrent, cfg.MaxConcurrent)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	cmd := newTestCmd(t, writeTestConfig(t, t.TempDir()))
	t.Setenv("PRESSGANG_API_TOKEN", "tok-from-env")

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "tok-from-env", cfg.APIToken)
}

func TestLoadConfigFlagOverride(t *testing.T) {
	cmd := newTestCmd(t, writeTestConfig(t, t.TempDir()))
	require.NoError(t, cmd.Flags().Set("repo_id", "other-repo"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "other-repo", cfg.RepoID)
}

func TestLoadConfigMissingFileStillNeedsRepoID(t *testing.T) {
	cmd := newTestCmd(t, filepath.Join(t.TempDir(), "nope.json"))

	_, err := loadConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repo_id")
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := loadConfig(newTestCmd(t, path))
	require.Error(t, err)
}
