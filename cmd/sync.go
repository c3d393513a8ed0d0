package cmd

import (
	"fmt"
	"io"

	"ssh-to-terminal/core/config"
	"ssh-to-terminal/core/reconcile"
	"ssh-to-terminal/core/utils"
	"ssh-to-terminal/feature/profiles"

	"github.com/spf13/cobra"
)

var (
	// Flags for the sync command
	syncSSHDir   string
	syncNoSubdir bool
	syncTerminal string
	syncAdd      bool
	syncRemove   bool
	syncExclude  []string
	syncDryRun   bool
	syncOutput   string
)

// syncCmd reconciles the settings file against the SSH config hosts.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Add or remove terminal profiles for SSH hosts",
	Long: `Scan the SSH directory for config files and update the Windows Terminal
settings.json. At least one of --add or --remove is required. When both are
given, matching profiles are removed first and then added back.

settings.json is rewritten with four-space indentation and object keys in
alphabetical order, so the first run may reorder the whole file. Values are
kept as they were.

Examples:
  # Add or update a profile for every host under ~/.ssh
  ssh-to-terminal sync --add

  # Remove every profile created by this tool
  ssh-to-terminal sync --remove --ssh-dir /nonexistent

  # Rebuild profiles, skipping a file, without writing anything
  ssh-to-terminal sync -r -a -e known_hosts --dry-run -o yaml`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	f := syncCmd.Flags()
	f.StringVarP(&syncSSHDir, "ssh-dir", "s", "~/.ssh", "Directory to scan for SSH config files")
	f.BoolVarP(&syncNoSubdir, "nosubdir", "n", false, "Do not scan subdirectories")
	f.StringVarP(&syncTerminal, "terminal", "t", "", "Path to settings.json (detected when empty)")
	f.BoolVarP(&syncAdd, "add", "a", false, "Add or update profiles for the scanned hosts")
	f.BoolVarP(&syncRemove, "remove", "r", false, "Remove profiles for the scanned hosts, or every tool profile when none are found")
	f.StringArrayVarP(&syncExclude, "exclude", "e", nil, "File name to skip (repeatable)")
	f.BoolVar(&syncDryRun, "dry-run", false, "Compute the changes without writing settings.json")
	f.StringVarP(&syncOutput, "output", "o", formatText, "Report format: text, json or yaml")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	opts := reconcile.Options{Add: syncAdd, Remove: syncRemove}
	if !opts.HasAction() {
		return fmt.Errorf("%w: use --add and/or --remove", reconcile.ErrNoAction)
	}
	if err := validateFormat(syncOutput); err != nil {
		return err
	}

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	applySyncFlags(cmd, cfg)

	ctx := cmd.Context()
	svc, cleanup, err := newService(ctx, cfg, l, requirements{validator: true, backup: true, journal: true})
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.Sync(ctx, profiles.Request{
		SSHDir:       cfg.SSH.Dir,
		Recursive:    cfg.SSH.Recursive,
		Excludes:     utils.MergeUnique(utils.SplitList(cfg.SSH.Exclude), syncExclude...),
		SettingsPath: cfg.Terminal.SettingsPath,
		Options:      opts,
		DryRun:       syncDryRun,
	})
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), syncOutput, res, func(w io.Writer) error {
		return writeSyncText(w, res)
	})
}

// applySyncFlags overrides configuration with flags the user set explicitly.
// Excluded names from --exclude are merged with the configured list instead.
func applySyncFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("ssh-dir") {
		cfg.SSH.Dir = syncSSHDir
	}
	if f.Changed("nosubdir") {
		cfg.SSH.Recursive = !syncNoSubdir
	}
	if f.Changed("terminal") {
		cfg.Terminal.SettingsPath = syncTerminal
	}
}

func writeSyncText(w io.Writer, res *profiles.Result) error {
	fmt.Fprintf(w, "Settings:\t%s\n", res.SettingsPath)
	fmt.Fprintf(w, "Config files:\t%d\n", len(res.Files))
	if res.Backup != "" {
		fmt.Fprintf(w, "Backup:\t%s\n", res.Backup)
	}
	fmt.Fprintln(w)

	for _, a := range res.Plan.Actions {
		detail := a.CommandLine
		if detail == "" {
			detail = a.Reason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Type, a.Name, a.GUID, detail)
	}
	if len(res.Plan.Actions) > 0 {
		fmt.Fprintln(w)
	}

	s := res.Plan.Summary
	fmt.Fprintf(w, "Hosts: %d, added: %d, updated: %d, removed: %d, profiles: %d\n",
		s.Hosts, s.Added, s.Updated, s.Removed, s.Profiles)
	if res.DryRun {
		fmt.Fprintln(w, "Dry run: settings.json was not modified")
	}
	return nil
}
