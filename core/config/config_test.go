package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "~/.ssh", cfg.SSH.Dir)
		assert.True(t, cfg.SSH.Recursive)
		assert.Empty(t, cfg.SSH.Exclude)
		assert.True(t, cfg.Terminal.Validate)
		assert.Equal(t, "https://aka.ms/terminal-profiles-schema", cfg.Terminal.SchemaURL)
		assert.Equal(t, 10, cfg.Terminal.SchemaTimeoutSeconds)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.False(t, cfg.Journal.Enabled)
		assert.Equal(t, "sqlite", cfg.Journal.Driver)
		assert.False(t, cfg.Backup.Enabled)
		assert.Equal(t, "terminal-settings", cfg.Backup.Bucket)
		assert.Equal(t, "backups", cfg.Backup.Prefix)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("SSH_DIR", "/etc/ssh/conf")
		t.Setenv("SSH_RECURSIVE", "false")
		t.Setenv("JOURNAL_ENABLED", "true")
		t.Setenv("BACKUP_PREFIX", "snapshots")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "/etc/ssh/conf", cfg.SSH.Dir)
		assert.False(t, cfg.SSH.Recursive)
		assert.True(t, cfg.Journal.Enabled)
		assert.Equal(t, "snapshots", cfg.Backup.Prefix)
	})

	t.Run("DotEnvFile", func(t *testing.T) {
		// Registered first so the value loaded from .env is restored.
		t.Setenv("LOG_LEVEL", "")

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("YAMLFile", func(t *testing.T) {
		dir := t.TempDir()
		content := `ssh:
  dir: /srv/ssh
  exclude: known_hosts,authorized_keys
terminal:
  settings_path: /tmp/settings.json
  validate: false
backup:
  enabled: true
  bucket: wt
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ssh-to-terminal.yaml"), []byte(content), 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "/srv/ssh", cfg.SSH.Dir)
		assert.Equal(t, "known_hosts,authorized_keys", cfg.SSH.Exclude)
		assert.True(t, cfg.SSH.Recursive)
		assert.Equal(t, "/tmp/settings.json", cfg.Terminal.SettingsPath)
		assert.False(t, cfg.Terminal.Validate)
		assert.True(t, cfg.Backup.Enabled)
		assert.Equal(t, "wt", cfg.Backup.Bucket)
	})

	t.Run("EnvironmentOverridesFile", func(t *testing.T) {
		t.Setenv("SSH_DIR", "/from/env")

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ssh-to-terminal.yaml"), []byte("ssh:\n  dir: /from/file\n"), 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "/from/env", cfg.SSH.Dir)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ssh-to-terminal.yaml"), []byte("ssh: [\n"), 0o644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}
