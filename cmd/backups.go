package cmd

import (
	"fmt"
	"io"

	"ssh-to-terminal/feature/profiles"

	"github.com/spf13/cobra"
)

var backupsOutput string

// backupsCmd lists settings snapshots in the backup bucket.
var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List settings.json backups in object storage",
	Long:  `Lists the settings snapshots taken before each sync. Requires backup.enabled.`,
	Args:  cobra.NoArgs,
	RunE:  runBackups,
}

func init() {
	backupsCmd.Flags().StringVarP(&backupsOutput, "output", "o", formatText, "Report format: text, json or yaml")

	RootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	if err := validateFormat(backupsOutput); err != nil {
		return err
	}

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	ctx := cmd.Context()
	svc, cleanup, err := newService(ctx, cfg, l, requirements{backup: true})
	if err != nil {
		return err
	}
	defer cleanup()

	backups, err := svc.ListBackups(ctx)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), backupsOutput, backups, func(w io.Writer) error {
		return writeBackupsText(w, cfg.Backup.Bucket, backups)
	})
}

func writeBackupsText(w io.Writer, bucket string, backups []profiles.BackupObject) error {
	if len(backups) == 0 {
		fmt.Fprintf(w, "No backups in bucket %s\n", bucket)
		return nil
	}
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%d\t%s\n", b.Key, b.Size, b.LastModified.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
