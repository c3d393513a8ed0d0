// Package reconcile merges SSH hosts into a terminal profile list.
//
// The profile list belongs to the settings document. The reconciler receives
// a pointer to it and edits it in place so that entries it does not own
// (user profiles, dynamic profiles, malformed values) keep their position.
//
// # Operations
//
//   - UpsertProfiles: add a profile per host or overwrite the profile with
//     the same name where it stands.
//   - RemoveProfiles: drop profiles named by the hosts, or, with no hosts,
//     every profile whose guid is the deterministic identity of its own name.
//
// Both are idempotent. Apply runs remove then add and reports what changed
// as a Plan.
//
// # Ownership
//
// A profile is tool-owned when its guid equals sshconfig.GUID(name). No
// other marker is used; the "source" key is never written because its
// presence makes Windows Terminal treat a profile as dynamically generated.
//
// # Usage
//
//	list := terminal.EnsureProfiles(doc)
//	plan, err := reconcile.Apply(list, hosts, reconcile.Options{Add: true})
package reconcile
