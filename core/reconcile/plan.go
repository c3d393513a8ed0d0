package reconcile

import (
	"errors"

	"ssh-to-terminal/core/sshconfig"
)

// ErrNoAction is returned by Apply when neither Add nor Remove is set.
var ErrNoAction = errors.New("no action specified")

// Apply reconciles profiles against hosts and returns the applied plan.
// Removal runs before addition, both against the same hosts. The list is
// left untouched when opts enables nothing.
func Apply(profiles *[]any, hosts []sshconfig.Host, opts Options) (*Plan, error) {
	if !opts.HasAction() {
		return nil, ErrNoAction
	}

	plan := &Plan{}
	plan.Summary.Hosts = len(hosts)

	if opts.Remove {
		remove(profiles, hosts, plan)
	}
	if opts.Add {
		upsert(profiles, hosts, plan)
	}

	plan.Summary.Profiles = len(*profiles)
	return plan, nil
}

// Changed reports whether the plan altered the list.
func (p *Plan) Changed() bool {
	return p != nil && len(p.Actions) > 0
}
