package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSchemaURL is the schema Windows Terminal declares in new settings.
const DefaultSchemaURL = "https://aka.ms/terminal-profiles-schema"

// Document keys.
const (
	KeySchema   = "$schema"
	KeyProfiles = "profiles"
	KeyList     = "list"
	KeyDefaults = "defaults"
)

// DefaultFilePerms is used when the settings file does not exist yet.
const DefaultFilePerms = 0o644

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded settings.json.
type Document map[string]any

// Validator checks a document before it is written. Implementations must
// swallow their own failures.
type Validator interface {
	Validate(ctx context.Context, doc Document)
}

// NewDocument returns the minimal settings document used when no file
// exists.
func NewDocument() Document {
	return Document{
		KeySchema: DefaultSchemaURL,
		KeyProfiles: map[string]any{
			KeyDefaults: map[string]any{},
			KeyList:     []any{},
		},
		"actions": []any{},
		"schemes": []any{},
		"themes":  []any{},
	}
}

// Load reads the settings document at path. A missing file yields
// NewDocument.
func Load(path string) (Document, error) {
	doc, _, err := ReadFile(path)
	return doc, err
}

// ReadFile is Load that also returns the raw file contents. The contents are
// nil when the file does not exist.
func ReadFile(path string) (Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(), nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return doc, data, nil
}

// Decode parses settings JSON. Numbers are kept as json.Number so they are
// written back unchanged.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("settings root must be an object")
	}
	return doc, nil
}

// Encode renders the document with four-space indentation and a trailing
// newline.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes doc to path, creating parent directories as needed. When v is
// not nil the document is validated first; the outcome never blocks the
// write.
func Save(ctx context.Context, path string, doc Document, v Validator) error {
	if v != nil {
		v.Validate(ctx, doc)
	}

	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	perm := os.FileMode(DefaultFilePerms)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set settings permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// EnsureProfiles guarantees doc.profiles is an object holding a list and
// returns a pointer to that list. Anything else under profiles.list is
// replaced by an empty list. A legacy top-level array under profiles becomes
// the list.
func EnsureProfiles(doc Document) *[]any {
	profiles, ok := doc[KeyProfiles].(map[string]any)
	if !ok {
		legacy, isList := asList(doc[KeyProfiles])
		profiles = map[string]any{}
		if isList {
			profiles[KeyList] = legacy
		}
		doc[KeyProfiles] = profiles
	}

	if list, ok := profiles[KeyList].(*[]any); ok {
		return list
	}

	list, ok := asList(profiles[KeyList])
	if !ok {
		list = &[]any{}
	}
	profiles[KeyList] = list
	return list
}

// asList returns a pointer to the sequence stored in v.
func asList(v any) (*[]any, bool) {
	switch l := v.(type) {
	case *[]any:
		return l, true
	case []any:
		return &l, true
	default:
		return nil, false
	}
}
