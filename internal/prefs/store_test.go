package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bm-popup/internal/prefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestJSONStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "prefs.json")

	s := prefs.NewJSONStore(path)
	assert.NilError(t, s.Set(prefs.KeyToken, "secret"))
	assert.NilError(t, s.Set(prefs.KeyDefaultTags, `["go"]`))

	// Verify file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("prefs file was not created")
	}

	// A second store on the same path sees the values
	reopened := prefs.NewJSONStore(path)
	got, err := reopened.Get(prefs.KeyToken)
	assert.NilError(t, err)
	assert.Equal(t, got, "secret")

	got, err = reopened.Get(prefs.KeyDefaultTags)
	assert.NilError(t, err)
	assert.Equal(t, got, `["go"]`)
}

func TestJSONStore_GetNonexistent(t *testing.T) {
	s := prefs.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := s.Get(prefs.KeyToken)
	assert.NilError(t, err)
	assert.Equal(t, got, "")
}

func TestJSONStore_SetEmptyRemovesKey(t *testing.T) {
	s := prefs.NewJSONStore(filepath.Join(t.TempDir(), "prefs.json"))
	assert.NilError(t, s.Set(prefs.KeyToken, "secret"))
	assert.NilError(t, s.Set(prefs.KeyToken, ""))

	got, err := s.Get(prefs.KeyToken)
	assert.NilError(t, err)
	assert.Equal(t, got, "")
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := prefs.NewJSONStore(path).Get(prefs.KeyToken)
	assert.Assert(t, err != nil, "expected parse error")
}

func TestToken_Trimmed(t *testing.T) {
	s := prefs.NewMemoryStore(map[string]string{prefs.KeyToken: "  abc \n"})

	token, err := prefs.Token(s)
	assert.NilError(t, err)
	assert.Equal(t, token, "abc")
}

func TestTags_RoundTrip(t *testing.T) {
	s := prefs.NewMemoryStore(nil)

	tags, err := prefs.Tags(s, prefs.KeyLastUsedTags)
	assert.NilError(t, err)
	assert.Check(t, is.Len(tags, 0))

	assert.NilError(t, prefs.SetTags(s, prefs.KeyLastUsedTags, []string{"go", "tools"}))

	tags, err = prefs.Tags(s, prefs.KeyLastUsedTags)
	assert.NilError(t, err)
	assert.DeepEqual(t, tags, []string{"go", "tools"})
}

func TestTags_InvalidJSON(t *testing.T) {
	s := prefs.NewMemoryStore(map[string]string{prefs.KeyDefaultTags: "go,tools"})

	_, err := prefs.Tags(s, prefs.KeyDefaultTags)
	assert.Assert(t, err != nil, "expected decode error")
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	s, err := prefs.Open(prefs.BackendJSON, dir)
	assert.NilError(t, err)
	_, ok := s.(*prefs.JSONStore)
	assert.Assert(t, ok, "expected JSONStore, got %T", s)

	s, err = prefs.Open("", dir)
	assert.NilError(t, err)
	defer prefs.Close(s)
	_, ok = s.(*prefs.SQLiteStore)
	assert.Assert(t, ok, "expected SQLiteStore, got %T", s)

	_, err = prefs.Open("redis", dir)
	assert.Assert(t, errors.Is(err, prefs.ErrUnknownBackend))
}
