// Package sshconfig discovers and parses OpenSSH client configuration files.
//
// Only a small subset of the format is understood: Host blocks with one or
// more whitespace-separated patterns and the HostName, User, Port and
// IdentityFile directives. Every other directive is ignored.
//
// Bytes that are not valid UTF-8 are dropped from every line, and lines are
// limited to 1 MiB. A file with a longer line fails to parse.
//
// # Hosts
//
// Each non-wildcard pattern of a Host block becomes one Host value. Patterns
// containing '*' or '?' are templates and produce nothing.
//
//	Host web1 web2
//	    HostName web.example
//	    User bob
//
// yields two hosts, web1 and web2, both connecting as bob@web.example.
//
// # Identity
//
// Host.Identity is a version 5 UUID derived from the host name alone, so the
// same alias always maps to the same terminal profile GUID.
//
// # Usage
//
//	files, _ := sshconfig.Discover("/home/alice/.ssh", true, nil)
//	for _, f := range files {
//	    hosts, err := sshconfig.ParseFile(f)
//	    ...
//	}
package sshconfig
