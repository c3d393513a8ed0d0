package cmd

import (
	"fmt"
	"io"

	"ssh-to-terminal/core/utils"
	"ssh-to-terminal/feature/profiles"

	"github.com/spf13/cobra"
)

var (
	// Flags for the scan command
	scanSSHDir   string
	scanNoSubdir bool
	scanExclude  []string
	scanOutput   string
)

// scanCmd lists the hosts a sync would use.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the SSH hosts that would become profiles",
	Long: `Discover and parse SSH config files without touching settings.json.
Each host is printed with its command line and profile GUID.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVarP(&scanSSHDir, "ssh-dir", "s", "~/.ssh", "Directory to scan for SSH config files")
	f.BoolVarP(&scanNoSubdir, "nosubdir", "n", false, "Do not scan subdirectories")
	f.StringArrayVarP(&scanExclude, "exclude", "e", nil, "File name to skip (repeatable)")
	f.StringVarP(&scanOutput, "output", "o", formatText, "Report format: text, json or yaml")

	RootCmd.AddCommand(scanCmd)
}

// scanHost is a host as reported by the scan command.
type scanHost struct {
	Name        string `json:"name" yaml:"name"`
	CommandLine string `json:"commandline" yaml:"commandline"`
	GUID        string `json:"guid" yaml:"guid"`
}

type scanReport struct {
	Files []string   `json:"files" yaml:"files"`
	Hosts []scanHost `json:"hosts" yaml:"hosts"`
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := validateFormat(scanOutput); err != nil {
		return err
	}

	cfg, l, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	f := cmd.Flags()
	if f.Changed("ssh-dir") {
		cfg.SSH.Dir = scanSSHDir
	}
	if f.Changed("nosubdir") {
		cfg.SSH.Recursive = !scanNoSubdir
	}

	svc := profiles.NewService(l, nil, nil, "", "", nil)
	res, err := svc.Scan(cfg.SSH.Dir, cfg.SSH.Recursive, utils.MergeUnique(utils.SplitList(cfg.SSH.Exclude), scanExclude...))
	if err != nil {
		return err
	}

	report := newScanReport(res)
	return render(cmd.OutOrStdout(), scanOutput, report, func(w io.Writer) error {
		for _, h := range report.Hosts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", h.Name, h.GUID, h.CommandLine)
		}
		fmt.Fprintf(w, "\n%d hosts in %d files\n", len(report.Hosts), len(report.Files))
		return nil
	})
}

func newScanReport(res *profiles.ScanResult) scanReport {
	report := scanReport{Files: res.Files, Hosts: make([]scanHost, 0, len(res.Hosts))}
	if report.Files == nil {
		report.Files = []string{}
	}
	for _, h := range res.Hosts {
		report.Hosts = append(report.Hosts, scanHost{
			Name:        h.Name,
			CommandLine: h.CommandLine(),
			GUID:        h.GUID(),
		})
	}
	return report
}
