package terminal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingValidator struct {
	calls int
}

func (r *recordingValidator) Validate(ctx context.Context, doc Document) {
	r.calls++
}

func TestLoad(t *testing.T) {
	t.Run("MissingFileGivesDefault", func(t *testing.T) {
		doc, err := Load(filepath.Join(t.TempDir(), "settings.json"))
		require.NoError(t, err)

		assert.Equal(t, DefaultSchemaURL, doc[KeySchema])
		assert.Empty(t, *EnsureProfiles(doc))
		assert.Contains(t, doc, "actions")
		assert.Contains(t, doc, "schemes")
		assert.Contains(t, doc, "themes")
	})

	t.Run("ExistingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		content := `{
    "$schema": "https://aka.ms/terminal-profiles-schema",
    "initialCols": 120,
    "profiles": {"list": [{"name": "PowerShell", "guid": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}"}]}
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, json.Number("120"), doc["initialCols"])

		list := *EnsureProfiles(doc)
		require.Len(t, list, 1)
		assert.Equal(t, "PowerShell", list[0].(map[string]any)["name"])
	})

	t.Run("ByteOrderMark", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a": true}`)...), 0o644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, true, doc["a"])
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"profiles": [`), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("NonObjectRoot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`null`), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestReadFile(t *testing.T) {
	t.Run("ReturnsRawContents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		content := []byte(`{"profiles": {"list": []}}`)
		require.NoError(t, os.WriteFile(path, content, 0o644))

		doc, raw, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, raw)
		assert.Contains(t, doc, KeyProfiles)
	})

	t.Run("MissingFileHasNoContents", func(t *testing.T) {
		doc, raw, err := ReadFile(filepath.Join(t.TempDir(), "settings.json"))
		require.NoError(t, err)
		assert.Nil(t, raw)
		assert.Equal(t, DefaultSchemaURL, doc[KeySchema])
	})
}

func TestEnsureProfiles(t *testing.T) {
	t.Run("CreatesStructure", func(t *testing.T) {
		doc := Document{}
		list := EnsureProfiles(doc)
		require.NotNil(t, list)
		assert.Empty(t, *list)

		*list = append(*list, map[string]any{"name": "x"})
		again := EnsureProfiles(doc)
		assert.Same(t, list, again)
		assert.Len(t, *again, 1)
	})

	t.Run("CoercesNonObjectProfiles", func(t *testing.T) {
		doc := Document{KeyProfiles: "bogus"}
		list := EnsureProfiles(doc)
		assert.Empty(t, *list)
		assert.IsType(t, map[string]any{}, doc[KeyProfiles])
	})

	t.Run("CoercesNonListList", func(t *testing.T) {
		doc := Document{KeyProfiles: map[string]any{KeyList: map[string]any{}, KeyDefaults: map[string]any{"font": "x"}}}
		list := EnsureProfiles(doc)
		assert.Empty(t, *list)
		assert.Equal(t, map[string]any{"font": "x"}, doc[KeyProfiles].(map[string]any)[KeyDefaults])
	})

	t.Run("LegacyArray", func(t *testing.T) {
		doc := Document{KeyProfiles: []any{map[string]any{"name": "old"}}}
		list := EnsureProfiles(doc)
		require.Len(t, *list, 1)
		assert.Equal(t, "old", (*list)[0].(map[string]any)["name"])
	})

	t.Run("MutationsReachEncodedOutput", func(t *testing.T) {
		doc := NewDocument()
		list := EnsureProfiles(doc)
		*list = append(*list, map[string]any{"name": "added", "hidden": false})

		data, err := Encode(doc)
		require.NoError(t, err)

		back, err := Decode(data)
		require.NoError(t, err)
		got := *EnsureProfiles(back)
		require.Len(t, got, 1)
		assert.Equal(t, "added", got[0].(map[string]any)["name"])
	})
}

func TestEncode(t *testing.T) {
	data, err := Encode(Document{"a": map[string]any{"b": "<ssh & co>"}})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": {\n        \"b\": \"<ssh & co>\"\n    }\n}\n", string(data))
}

func TestSave(t *testing.T) {
	t.Run("CreatesParentsAndValidates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")
		v := &recordingValidator{}

		doc := NewDocument()
		*EnsureProfiles(doc) = append(*EnsureProfiles(doc), map[string]any{"name": "n"})

		require.NoError(t, Save(context.Background(), path, doc, v))
		assert.Equal(t, 1, v.calls)

		back, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, *EnsureProfiles(back), 1)
	})

	t.Run("NilValidator", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, Save(context.Background(), path, Document{"k": "v"}, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"k\": \"v\"\n}\n", string(data))
	})

	t.Run("KeepsPermissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

		require.NoError(t, Save(context.Background(), path, Document{}, nil))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Save(context.Background(), filepath.Join(dir, "settings.json"), Document{}, nil))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
