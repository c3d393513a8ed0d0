package reconcile

// Profile keys read or written by the reconciler.
const (
	KeyName        = "name"
	KeyCommandLine = "commandline"
	KeyGUID        = "guid"
	KeyHidden      = "hidden"
	KeySource      = "source"
)

// ActionType represents the kind of change made to the profile list.
type ActionType string

const (
	// ActionAdd appends a profile for a host not yet in the list.
	ActionAdd ActionType = "add"
	// ActionUpdate overwrites an existing profile with the same name.
	ActionUpdate ActionType = "update"
	// ActionRemove drops a profile from the list.
	ActionRemove ActionType = "remove"
)

// Action represents one change applied to the profile list.
type Action struct {
	// Type specifies the change.
	Type ActionType `json:"type" yaml:"type"`

	// Name is the profile name.
	Name string `json:"name" yaml:"name"`

	// GUID is the profile guid after an add/update, or before a removal.
	GUID string `json:"guid,omitempty" yaml:"guid,omitempty"`

	// CommandLine is the new command line for add/update actions.
	CommandLine string `json:"commandline,omitempty" yaml:"commandline,omitempty"`

	// Reason explains why this action was taken.
	Reason string `json:"reason" yaml:"reason"`
}

// Plan contains the actions applied by a reconciliation.
type Plan struct {
	// Actions lists changes in the order they were applied.
	Actions []Action `json:"actions" yaml:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary" yaml:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Hosts is the number of host records reconciled.
	Hosts int `json:"hosts" yaml:"hosts"`

	// Added counts appended profiles.
	Added int `json:"added" yaml:"added"`

	// Updated counts profiles overwritten in place.
	Updated int `json:"updated" yaml:"updated"`

	// Removed counts dropped profiles.
	Removed int `json:"removed" yaml:"removed"`

	// Profiles is the length of the list after reconciliation.
	Profiles int `json:"profiles" yaml:"profiles"`
}

// Options selects which operations Apply runs.
type Options struct {
	// Add upserts a profile for every host.
	Add bool

	// Remove drops profiles for the hosts (or every tool-owned profile when
	// there are no hosts). Runs before Add.
	Remove bool
}

// HasAction reports whether at least one operation is enabled.
func (o Options) HasAction() bool {
	return o.Add || o.Remove
}

// record adds an action to the plan and updates the counters.
func (p *Plan) record(a Action) {
	if p == nil {
		return
	}
	p.Actions = append(p.Actions, a)
	switch a.Type {
	case ActionAdd:
		p.Summary.Added++
	case ActionUpdate:
		p.Summary.Updated++
	case ActionRemove:
		p.Summary.Removed++
	}
}
