package sshconfig

import (
	"strings"

	"github.com/google/uuid"
)

// IdentityNamespace seeds every host identity. Changing it orphans all
// profiles written by earlier runs.
var IdentityNamespace = uuid.MustParse("12345678-1234-5678-1234-567812345678")

// identityPrefix is prepended to the host name before hashing.
const identityPrefix = "ssh-to-terminal:"

// Host is one concrete alias resolved from a Host block.
type Host struct {
	// Name is the alias token from the Host line.
	Name string `json:"name" yaml:"name"`
	// HostName is the target address, empty when not configured.
	HostName string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	// User is the login user, empty when not configured.
	User string `json:"user,omitempty" yaml:"user,omitempty"`
	// Port is kept verbatim and never validated as a number.
	Port string `json:"port,omitempty" yaml:"port,omitempty"`
	// IdentityFile is the private key path, kept verbatim.
	IdentityFile string `json:"identity_file,omitempty" yaml:"identity_file,omitempty"`
}

// CommandLine returns the ssh invocation for the host. Values are inserted
// without any shell quoting.
func (h Host) CommandLine() string {
	parts := []string{"ssh"}
	if h.Port != "" {
		parts = append(parts, "-p", h.Port)
	}
	if h.IdentityFile != "" {
		parts = append(parts, "-i", h.IdentityFile)
	}

	target := h.HostName
	if target == "" {
		target = h.Name
	}
	if h.User != "" {
		target = h.User + "@" + target
	}

	parts = append(parts, target)
	return strings.Join(parts, " ")
}

// Identity returns the deterministic identifier of the host.
func (h Host) Identity() uuid.UUID {
	return Identity(h.Name)
}

// GUID returns the identity in the braced form used by terminal profiles.
func (h Host) GUID() string {
	return GUID(h.Name)
}

// Identity computes the version 5 UUID for a host name.
func Identity(name string) uuid.UUID {
	return uuid.NewSHA1(IdentityNamespace, []byte(identityPrefix+name))
}

// GUID computes the braced profile GUID for a host name,
// e.g. "{0b5c6d2e-...}".
func GUID(name string) string {
	return "{" + Identity(name).String() + "}"
}

// IsWildcard reports whether a Host pattern is a template rather than a
// concrete alias.
func IsWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}
