package cmd

import (
	"fmt"
	"io"

	"ssh-to-terminal/core/journal"
	"ssh-to-terminal/feature/profiles"

	"github.com/spf13/cobra"
)

var (
	// Flags for the history command
	historyLimit  int
	historyOutput string
)

// historyCmd shows journaled sync runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync runs from the journal",
	Long:  `Lists the most recent sync runs recorded in the journal database. Requires journal.enabled.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", journal.DefaultLimit, "Maximum number of runs to show")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", formatText, "Report format: text, json or yaml")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validateFormat(historyOutput); err != nil {
		return err
	}

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	if !cfg.Journal.Enabled {
		return fmt.Errorf("%w (set JOURNAL_ENABLED=true)", profiles.ErrJournalDisabled)
	}

	ctx := cmd.Context()
	store, closeDB, err := openJournal(ctx, cfg.Journal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer closeDB()

	runs, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), historyOutput, runs, func(w io.Writer) error {
		return writeHistoryText(w, runs)
	})
}

func writeHistoryText(w io.Writer, runs []journal.SyncRun) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t+%d ~%d -%d\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.RunID, r.Mode,
			r.Added, r.Updated, r.Removed, r.SettingsPath)
	}
	return nil
}
