// Package journal records applied sync runs in a database.
//
// Each run is one SyncRun row with its ProfileChange rows, keyed by the run
// ID that also appears in the log output. The journal is optional and write
// failures never undo a completed settings write.
package journal
