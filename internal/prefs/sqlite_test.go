package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bm-popup/internal/prefs"
)

func TestSQLiteStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "prefs.db")

	s, err := prefs.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.Set(prefs.KeyToken, "secret"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	got, err := s.Get(prefs.KeyToken)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got != "secret" {
		t.Errorf("expected 'secret', got %q", got)
	}
}

func TestSQLiteStore_EmptyDatabase(t *testing.T) {
	s, err := prefs.NewSQLiteStore(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	got, err := s.Get(prefs.KeyLastUsedTags)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestSQLiteStore_Overwrite(t *testing.T) {
	s, err := prefs.NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if err := prefs.SetTags(s, prefs.KeyLastUsedTags, []string{"a"}); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := prefs.SetTags(s, prefs.KeyLastUsedTags, []string{"b", "c"}); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	tags, err := prefs.Tags(s, prefs.KeyLastUsedTags)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "b" || tags[1] != "c" {
		t.Errorf("expected [b c], got %v", tags)
	}
}

func TestSQLiteStore_SetEmptyDeletes(t *testing.T) {
	s, err := prefs.NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	_ = s.Set(prefs.KeyToken, "secret")
	if err := s.Set(prefs.KeyToken, ""); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}

	got, _ := s.Get(prefs.KeyToken)
	if got != "" {
		t.Errorf("expected key to be removed, got %q", got)
	}
}

func TestSQLiteStore_ReopenKeepsDataAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	s, err := prefs.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	_ = s.Set(prefs.KeyToken, "persisted")
	s.Close()

	// Reopening must not re-run migrations destructively
	s, err = prefs.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected schema version 1, got %d", version)
	}

	got, _ := s.Get(prefs.KeyToken)
	if got != "persisted" {
		t.Errorf("expected 'persisted', got %q", got)
	}
}
