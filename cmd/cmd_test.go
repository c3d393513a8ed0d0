package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ssh-to-terminal/core/journal"
	"ssh-to-terminal/core/reconcile"
	"ssh-to-terminal/core/sshconfig"
	"ssh-to-terminal/feature/profiles"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sshConfig = `Host web1
    HostName web.example.com
    User deploy

Host *
    ServerAliveInterval 30
`

// resetFlags restores every flag of c to its default between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range append([]*cobra.Command{RootCmd}, RootCmd.Commands()...) {
		resetFlags(c)
	}

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append(args, "--config-dir", t.TempDir()))
	err := RootCmd.Execute()
	return out.String(), err
}

func setupSSHDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(sshConfig), 0o644))
	return dir
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitNoAction, exitCode(reconcile.ErrNoAction))
	assert.Equal(t, exitNoAction, exitCode(fmt.Errorf("%w: use --add", reconcile.ErrNoAction)))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
}

func TestRender(t *testing.T) {
	v := map[string]int{"added": 2}
	text := func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "added\t2")
		return err
	}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatJSON, v, text))
		assert.JSONEq(t, `{"added": 2}`, buf.String())
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatYAML, v, text))
		assert.Equal(t, "added: 2\n", buf.String())
	})

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, formatText, v, text))
		assert.Equal(t, "added  2\n", buf.String())
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Error(t, render(&bytes.Buffer{}, "xml", v, text))
	})
}

func TestSyncCommand(t *testing.T) {
	t.Setenv("TERMINAL_VALIDATE", "false")

	t.Run("NoActionFailsBeforeWork", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "settings.json")

		_, err := run(t, "sync", "-s", setupSSHDir(t), "-t", settings)
		assert.ErrorIs(t, err, reconcile.ErrNoAction)
		assert.ErrorContains(t, err, "--add")
		assert.NoFileExists(t, settings)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := run(t, "sync", "-a", "-o", "xml")
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("AddJSONReport", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "settings.json")

		out, err := run(t, "sync", "-a", "-s", setupSSHDir(t), "-t", settings, "-o", "json")
		require.NoError(t, err)

		var res profiles.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Written)
		assert.Equal(t, settings, res.SettingsPath)
		require.Len(t, res.Plan.Actions, 1)
		assert.Equal(t, reconcile.ActionAdd, res.Plan.Actions[0].Type)
		assert.Equal(t, sshconfig.GUID("web1"), res.Plan.Actions[0].GUID)
		assert.FileExists(t, settings)
	})

	t.Run("DryRunText", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "settings.json")

		out, err := run(t, "sync", "--add", "--dry-run", "--ssh-dir", setupSSHDir(t), "--terminal", settings)
		require.NoError(t, err)

		assert.Contains(t, out, "ssh deploy@web.example.com")
		assert.Contains(t, out, "added: 1")
		assert.Contains(t, out, "Dry run")
		assert.NoFileExists(t, settings)
	})

	t.Run("ExcludeRepeatable", func(t *testing.T) {
		dir := setupSSHDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "extra"), []byte("Host db\n"), 0o644))
		settings := filepath.Join(t.TempDir(), "settings.json")

		out, err := run(t, "sync", "-a", "-s", dir, "-t", settings, "-e", "config", "-e", "other", "-o", "yaml")
		require.NoError(t, err)

		var res profiles.Result
		require.NoError(t, yaml.Unmarshal([]byte(out), &res))
		require.Len(t, res.Plan.Actions, 1)
		assert.Equal(t, "db", res.Plan.Actions[0].Name)
	})
}

func TestScanCommand(t *testing.T) {
	out, err := run(t, "scan", "-s", setupSSHDir(t), "-o", "json")
	require.NoError(t, err)

	var report scanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Hosts, 1)
	assert.Equal(t, scanHost{
		Name:        "web1",
		CommandLine: "ssh deploy@web.example.com",
		GUID:        sshconfig.GUID("web1"),
	}, report.Hosts[0])
}

func TestHistoryCommand(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		_, err := run(t, "history")
		assert.ErrorIs(t, err, profiles.ErrJournalDisabled)
	})

	t.Run("AfterSync", func(t *testing.T) {
		t.Setenv("TERMINAL_VALIDATE", "false")
		t.Setenv("JOURNAL_ENABLED", "true")
		t.Setenv("JOURNAL_NAME", filepath.Join(t.TempDir(), "journal.db"))

		settings := filepath.Join(t.TempDir(), "settings.json")
		_, err := run(t, "sync", "-a", "-s", setupSSHDir(t), "-t", settings)
		require.NoError(t, err)

		out, err := run(t, "history", "-o", "json")
		require.NoError(t, err)

		var runs []journal.SyncRun
		require.NoError(t, json.Unmarshal([]byte(out), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "add", runs[0].Mode)
		assert.Equal(t, 1, runs[0].Added)
	})
}

func TestBackupsCommandDisabled(t *testing.T) {
	_, err := run(t, "backups")
	assert.ErrorIs(t, err, profiles.ErrBackupDisabled)
}

func TestWriteHistoryText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryText(&buf, nil))
	assert.Equal(t, "No runs recorded\n", buf.String())

	buf.Reset()
	runs := []journal.SyncRun{{
		RunID:        "run-1",
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
		SettingsPath: "/tmp/settings.json",
		Mode:         "remove+add",
		Added:        2,
		Removed:      1,
	}}
	require.NoError(t, writeHistoryText(&buf, runs))
	assert.Equal(t, "2026-01-02 03:04:05\trun-1\tremove+add\t+2 ~0 -1\t/tmp/settings.json\n", buf.String())
}

func TestBackupsCommandInvalidTarget(t *testing.T) {
	t.Setenv("BACKUP_ENABLED", "true")
	t.Setenv("BACKUP_BUCKET", " ")

	_, err := run(t, "backups")
	assert.ErrorContains(t, err, "backup bucket is required")
}

func TestSyncHelpMentionsKeyOrder(t *testing.T) {
	assert.Contains(t, syncCmd.Long, "alphabetical order")
}
