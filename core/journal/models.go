package journal

import (
	"strings"
	"time"

	"ssh-to-terminal/core/reconcile"
)

// SyncRun is one applied reconciliation.
type SyncRun struct {
	ID           uint      `gorm:"primaryKey" json:"-" yaml:"-"`
	RunID        string    `gorm:"size:36;uniqueIndex" json:"run_id" yaml:"run_id"`
	StartedAt    time.Time `gorm:"index" json:"started_at" yaml:"started_at"`
	SettingsPath string    `gorm:"size:1024" json:"settings_path" yaml:"settings_path"`
	Mode         string    `gorm:"size:16" json:"mode" yaml:"mode"`
	Files        int       `json:"files" yaml:"files"`
	Hosts        int       `json:"hosts" yaml:"hosts"`
	Added        int       `json:"added" yaml:"added"`
	Updated      int       `json:"updated" yaml:"updated"`
	Removed      int       `json:"removed" yaml:"removed"`

	Changes []ProfileChange `gorm:"foreignKey:RunID;references:RunID" json:"changes,omitempty" yaml:"changes,omitempty"`
}

// ProfileChange is one action of a run.
type ProfileChange struct {
	ID          uint   `gorm:"primaryKey" json:"-" yaml:"-"`
	RunID       string `gorm:"size:36;index" json:"-" yaml:"-"`
	Action      string `gorm:"size:16" json:"action" yaml:"action"`
	Name        string `gorm:"size:255" json:"name" yaml:"name"`
	GUID        string `gorm:"size:38" json:"guid,omitempty" yaml:"guid,omitempty"`
	CommandLine string `gorm:"size:2048" json:"commandline,omitempty" yaml:"commandline,omitempty"`
	Reason      string `gorm:"size:255" json:"reason" yaml:"reason"`
}

// NewRun builds the journal entry for an applied plan.
func NewRun(runID string, startedAt time.Time, settingsPath string, files int, opts reconcile.Options, plan *reconcile.Plan) *SyncRun {
	run := &SyncRun{
		RunID:        runID,
		StartedAt:    startedAt.UTC(),
		SettingsPath: settingsPath,
		Mode:         Mode(opts),
		Files:        files,
	}
	if plan == nil {
		return run
	}

	run.Hosts = plan.Summary.Hosts
	run.Added = plan.Summary.Added
	run.Updated = plan.Summary.Updated
	run.Removed = plan.Summary.Removed

	for _, a := range plan.Actions {
		run.Changes = append(run.Changes, ProfileChange{
			RunID:       runID,
			Action:      string(a.Type),
			Name:        a.Name,
			GUID:        a.GUID,
			CommandLine: a.CommandLine,
			Reason:      a.Reason,
		})
	}
	return run
}

// Mode renders the enabled operations, e.g. "remove+add".
func Mode(opts reconcile.Options) string {
	var parts []string
	if opts.Remove {
		parts = append(parts, "remove")
	}
	if opts.Add {
		parts = append(parts, "add")
	}
	return strings.Join(parts, "+")
}
