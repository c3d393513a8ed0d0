// Package terminal reads and writes the Windows Terminal settings document.
//
// The document is kept as a generic JSON tree so that keys this tool does not
// know about survive a load/save cycle. EnsureProfiles returns a pointer to
// the profiles.list sequence which stays attached to the document, so edits
// made through it are written by Save.
//
// Save validates the document against the JSON schema it declares on a
// best-effort basis: fetch, compile and validation failures are logged at
// debug level and never prevent the write.
package terminal
