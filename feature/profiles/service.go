package profiles

import (
	"context"
	"fmt"
	"time"

	"ssh-to-terminal/core/journal"
	"ssh-to-terminal/core/logger"
	"ssh-to-terminal/core/reconcile"
	"ssh-to-terminal/core/sshconfig"
	"ssh-to-terminal/core/storage"
	"ssh-to-terminal/core/terminal"
	"ssh-to-terminal/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service runs scans and syncs.
type Service struct {
	logger    *zap.Logger
	validator terminal.Validator
	client    storage.Client
	bucket    string
	prefix    string
	journal   *journal.Store
	now       func() time.Time
}

// NewService creates a new profiles service. validator, client and store may
// be nil to disable validation, backups and the journal respectively.
func NewService(logger *zap.Logger, validator terminal.Validator, client storage.Client, bucket, prefix string, store *journal.Store) *Service {
	return &Service{
		logger:    logger,
		validator: validator,
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		journal:   store,
		now:       time.Now,
	}
}

// Request describes one sync run.
type Request struct {
	// SSHDir is the root searched for SSH config files.
	SSHDir string
	// Recursive descends into subdirectories of SSHDir.
	Recursive bool
	// Excludes lists file base names to skip.
	Excludes []string
	// SettingsPath is the settings.json to update.
	SettingsPath string
	// Options selects remove and/or add.
	Options reconcile.Options
	// DryRun computes the plan without writing anything.
	DryRun bool
}

// ScanResult holds the outcome of discovery and parsing.
type ScanResult struct {
	Files []string         `json:"files" yaml:"files"`
	Hosts []sshconfig.Host `json:"hosts" yaml:"hosts"`
}

// Result describes a completed sync run.
type Result struct {
	RunID        string          `json:"run_id" yaml:"run_id"`
	SettingsPath string          `json:"settings_path" yaml:"settings_path"`
	Files        []string        `json:"files" yaml:"files"`
	Plan         *reconcile.Plan `json:"plan" yaml:"plan"`
	DryRun       bool            `json:"dry_run" yaml:"dry_run"`
	Written      bool            `json:"written" yaml:"written"`
	Backup       string          `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// Scan discovers SSH config files under dir and parses every Host block.
// Files that fail to parse are logged and contribute no hosts.
func (s *Service) Scan(dir string, recursive bool, excludes []string) (*ScanResult, error) {
	root := utils.ExpandHome(dir)
	files, err := sshconfig.Discover(root, recursive, excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to discover ssh config files: %w", err)
	}

	result := &ScanResult{Files: files, Hosts: []sshconfig.Host{}}
	for _, file := range files {
		hosts, err := sshconfig.ParseFile(file)
		if err != nil {
			s.logger.Warn("Failed to parse ssh config", zap.String("file", file), zap.Error(err))
			continue
		}
		s.logger.Debug("Parsed ssh config", zap.String("file", file), zap.Int("hosts", len(hosts)))
		result.Hosts = append(result.Hosts, hosts...)
	}
	return result, nil
}

// Sync reconciles the settings file against the SSH config hosts.
func (s *Service) Sync(ctx context.Context, req Request) (*Result, error) {
	if !req.Options.HasAction() {
		return nil, reconcile.ErrNoAction
	}

	startedAt := s.now()
	runID := uuid.NewString()
	log := logger.WithRunID(s.logger, runID)

	settingsPath := utils.ExpandHome(req.SettingsPath)
	if settingsPath == "" {
		settingsPath = terminal.DefaultSettingsPath()
	}

	scan, err := s.Scan(req.SSHDir, req.Recursive, req.Excludes)
	if err != nil {
		return nil, err
	}
	log.Info("Scanned ssh config",
		zap.String("dir", req.SSHDir),
		zap.Int("files", len(scan.Files)),
		zap.Int("hosts", len(scan.Hosts)),
	)

	doc, raw, err := terminal.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.Apply(terminal.EnsureProfiles(doc), scan.Hosts, req.Options)
	if err != nil {
		return nil, err
	}
	log.Info("Reconciled profiles",
		zap.String("mode", journal.Mode(req.Options)),
		zap.Int("added", plan.Summary.Added),
		zap.Int("updated", plan.Summary.Updated),
		zap.Int("removed", plan.Summary.Removed),
		zap.Int("profiles", plan.Summary.Profiles),
	)

	result := &Result{
		RunID:        runID,
		SettingsPath: settingsPath,
		Files:        scan.Files,
		Plan:         plan,
		DryRun:       req.DryRun,
	}
	if req.DryRun {
		log.Info("Dry run, settings left untouched", zap.String("path", settingsPath))
		return result, nil
	}

	if s.client != nil && raw != nil {
		name, err := s.Backup(ctx, raw)
		if err != nil {
			return nil, err
		}
		result.Backup = name
		log.Info("Backed up settings", zap.String("bucket", s.bucket), zap.String("object", name))
	}

	if err := terminal.Save(ctx, settingsPath, doc, s.validator); err != nil {
		return nil, err
	}
	result.Written = true
	log.Info("Wrote settings", zap.String("path", settingsPath))

	if s.journal != nil {
		run := journal.NewRun(runID, startedAt, settingsPath, len(scan.Files), req.Options, plan)
		if err := s.journal.Record(ctx, run); err != nil {
			log.Warn("Failed to journal run", zap.Error(err))
		}
	}

	return result, nil
}

// History returns the most recent journaled runs.
func (s *Service) History(ctx context.Context, limit int) ([]journal.SyncRun, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.Recent(ctx, limit)
}
