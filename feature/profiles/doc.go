// Package profiles keeps Windows Terminal profiles in step with SSH config
// hosts.
//
// # Pipeline
//
// A sync run performs the following steps:
//
//  1. Discover candidate SSH config files and parse their Host blocks.
//  2. Load settings.json (or a default document).
//  3. Remove and/or upsert profiles via the reconcile package.
//  4. Back up the previous settings file to object storage (optional).
//  5. Write the document, validating it against its schema first.
//  6. Journal the run to the database (optional).
//
// Dry runs stop after step 3 and return the plan.
//
// # Usage
//
//	svc := profiles.NewService(logger, validator, client, "terminal-settings", "backups", store)
//	res, err := svc.Sync(ctx, profiles.Request{SSHDir: "~/.ssh", Recursive: true, Options: reconcile.Options{Add: true}})
package profiles
