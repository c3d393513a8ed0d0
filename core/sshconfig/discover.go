package sshconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotDirectory is returned when the scan root exists but is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// Discover returns the SSH config files below root. When recursive is false
// only the immediate children of root are considered. Files whose base name
// appears in excludes are skipped, as is anything that does not contain a
// Host line. Unreadable entries and a missing root yield no results rather
// than an error.
func Discover(root string, recursive bool, excludes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: %w", root, ErrNotDirectory)
	}

	excluded := make(map[string]struct{}, len(excludes))
	for _, e := range excludes {
		excluded[filepath.Base(e)] = struct{}{}
	}

	var candidates []string
	if recursive {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			candidates = append(candidates, path)
			return nil
		})
	} else {
		entries, _ := os.ReadDir(root)
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			candidates = append(candidates, filepath.Join(root, e.Name()))
		}
	}

	var files []string
	for _, path := range candidates {
		if _, skip := excluded[filepath.Base(path)]; skip {
			continue
		}
		if !isRegularFile(path) {
			continue
		}
		if LooksLikeConfig(path) {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// LooksLikeConfig reports whether the file at path contains at least one
// Host line. Any read error means false.
func LooksLikeConfig(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if isHostLine(cleanLine(scanner.Text())) {
			return true
		}
	}
	return false
}

// isRegularFile follows symlinks, matching how the config would be opened.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
