// Package utils provides small helpers shared by the command and core
// packages that don't fit into a domain-specific package.
package utils
