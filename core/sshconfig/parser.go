package sshconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	// hostLineRe matches a Host line. The keyword must start the line.
	hostLineRe = regexp.MustCompile(`(?i)^Host\s+(.+)$`)
	// directiveRe matches a "key value" line after trimming.
	directiveRe = regexp.MustCompile(`^(\w+)\s+(.+)$`)
)

// Directive keys understood by the parser, lowercased.
const (
	KeyHostName     = "hostname"
	KeyUser         = "user"
	KeyPort         = "port"
	KeyIdentityFile = "identityfile"
)

// SupportedKeys lists the directives copied into a Host.
var SupportedKeys = map[string]struct{}{
	KeyHostName:     {},
	KeyUser:         {},
	KeyPort:         {},
	KeyIdentityFile: {},
}

// maxLineSize bounds a single config line. A longer line fails Parse and
// stops LooksLikeConfig from seeing any Host line after it.
const maxLineSize = 1024 * 1024

// block is the Host block being accumulated.
type block struct {
	patterns []string
	values   map[string]string
}

func newBlock() *block {
	return &block{values: make(map[string]string)}
}

// flush emits one Host per non-wildcard pattern and resets the block.
// A block without patterns emits nothing and keeps its values.
func (b *block) flush(hosts []Host) []Host {
	if len(b.patterns) == 0 {
		return hosts
	}
	for _, name := range b.patterns {
		if IsWildcard(name) {
			continue
		}
		hosts = append(hosts, Host{
			Name:         name,
			HostName:     b.values[KeyHostName],
			User:         b.values[KeyUser],
			Port:         b.values[KeyPort],
			IdentityFile: b.values[KeyIdentityFile],
		})
	}
	b.patterns = nil
	b.values = make(map[string]string)
	return hosts
}

// ParseFile parses the SSH config at path.
func ParseFile(path string) ([]Host, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	hosts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return hosts, nil
}

// Parse reads SSH config text and returns the concrete hosts it declares,
// in file order. Unknown directives and malformed lines are ignored; only
// read errors are returned.
func Parse(r io.Reader) ([]Host, error) {
	var hosts []Host
	current := newBlock()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := cleanLine(scanner.Text())
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if m := hostLineRe.FindStringSubmatch(line); m != nil {
			hosts = current.flush(hosts)
			current.patterns = strings.Fields(m[1])
			continue
		}

		m := directiveRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		key := strings.ToLower(m[1])
		if _, ok := SupportedKeys[key]; ok {
			current.values[key] = strings.TrimSpace(m[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return current.flush(hosts), nil
}

// cleanLine drops bytes that are not valid UTF-8 so host names survive a
// round trip through settings.json unchanged.
func cleanLine(line string) string {
	return strings.ToValidUTF8(line, "")
}

// isHostLine reports whether line declares at least one Host pattern.
func isHostLine(line string) bool {
	m := hostLineRe.FindStringSubmatch(line)
	return m != nil && len(strings.Fields(m[1])) > 0
}
