package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"ssh-to-terminal/core/logger"
	"ssh-to-terminal/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes returned by Execute.
const (
	exitFailure  = 1
	exitNoAction = 2
)

// version is set at build time with -ldflags "-X ssh-to-terminal/cmd.version=...".
var version = "dev"

var (
	// Flags shared by every command
	configDir string
	debugLog  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ssh-to-terminal",
	Short: "Sync SSH config hosts into Windows Terminal profiles",
	Long: `ssh-to-terminal scans SSH client configuration files for Host entries and
keeps a matching Windows Terminal profile for each one in settings.json.

Profiles are identified by a GUID derived from the host name, so repeated
runs update entries in place and removal only touches profiles this tool
created.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, reconcile.ErrNoAction) {
		return exitNoAction
	}
	return exitFailure
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding .env and ssh-to-terminal.yaml")
	RootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "Enable debug logging")
}
