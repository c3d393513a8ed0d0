// Package config provides configuration management for ssh-to-terminal.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional ssh-to-terminal.yaml. Command-line flags are
// applied on top by the cmd package, and only when set explicitly.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - SSH: directory to scan, recursion and exclusions
//   - Terminal: settings.json location and schema validation
//   - Log: Logging level and format
//   - Journal: run journal database (sqlite or MySQL)
//   - Backup: S3/MinIO bucket for settings snapshots
//
// Environment variables map onto nested keys with dots replaced by
// underscores, e.g. SSH_DIR sets ssh.dir and BACKUP_ENABLED sets
// backup.enabled.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.SSH.Dir)
package config
