package reconcile

import (
	"ssh-to-terminal/core/sshconfig"
)

// NewProfile builds the profile record for a host. The "source" key is never
// set; Windows Terminal reserves it for generated profiles.
func NewProfile(h sshconfig.Host) map[string]any {
	return map[string]any{
		KeyName:        h.Name,
		KeyCommandLine: h.CommandLine(),
		KeyGUID:        h.GUID(),
		KeyHidden:      false,
	}
}

// UpsertProfiles adds a profile for every host, overwriting in place any
// profile that already carries the host name.
func UpsertProfiles(profiles *[]any, hosts []sshconfig.Host) {
	upsert(profiles, hosts, nil)
}

// RemoveProfiles drops the profiles named by hosts. With no hosts it drops
// every tool-owned profile instead. Entries that are not records, or whose
// name or guid cannot be read, are always kept.
func RemoveProfiles(profiles *[]any, hosts []sshconfig.Host) {
	remove(profiles, hosts, nil)
}

// IsToolOwned reports whether entry is a profile record whose guid is the
// deterministic identity of its own name.
func IsToolOwned(entry any) bool {
	record, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	name, ok := stringField(record, KeyName)
	if !ok {
		return false
	}
	guid, ok := stringField(record, KeyGUID)
	if !ok {
		return false
	}
	return guid == sshconfig.GUID(name)
}

func upsert(profiles *[]any, hosts []sshconfig.Host, plan *Plan) {
	byName := indexByName(*profiles)

	for _, h := range hosts {
		profile := NewProfile(h)
		action := Action{
			Name:        h.Name,
			GUID:        h.GUID(),
			CommandLine: h.CommandLine(),
		}

		if i, exists := byName[h.Name]; exists {
			(*profiles)[i] = profile
			action.Type = ActionUpdate
			action.Reason = "profile with the same name exists"
		} else {
			*profiles = append(*profiles, profile)
			byName[h.Name] = len(*profiles) - 1
			action.Type = ActionAdd
			action.Reason = "no profile with this name"
		}
		plan.record(action)
	}
}

func remove(profiles *[]any, hosts []sshconfig.Host, plan *Plan) {
	names := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		names[h.Name] = struct{}{}
	}

	keep := make([]any, 0, len(*profiles))
	for _, entry := range *profiles {
		record, ok := entry.(map[string]any)
		if !ok {
			keep = append(keep, entry)
			continue
		}

		name, hasName := stringField(record, KeyName)
		guid, _ := stringField(record, KeyGUID)

		if hasName {
			if _, listed := names[name]; listed {
				plan.record(Action{Type: ActionRemove, Name: name, GUID: guid, Reason: "named by a scanned host"})
				continue
			}
		}

		if len(names) == 0 && IsToolOwned(record) {
			plan.record(Action{Type: ActionRemove, Name: name, GUID: guid, Reason: "guid matches the identity of its name"})
			continue
		}

		keep = append(keep, entry)
	}

	*profiles = keep
}

// indexByName maps profile names to their position. When a name repeats the
// last occurrence wins.
func indexByName(profiles []any) map[string]int {
	byName := make(map[string]int, len(profiles))
	for i, entry := range profiles {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := stringField(record, KeyName); ok && name != "" {
			byName[name] = i
		}
	}
	return byName
}

func stringField(record map[string]any, key string) (string, bool) {
	s, ok := record[key].(string)
	return s, ok
}
