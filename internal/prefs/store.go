package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Keys persisted by the popup.
const (
	KeyToken        = "token"
	KeyDefaultTags  = "defaultTags"
	KeyLastUsedTags = "lastUsedTags"
)

// Storage backends accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is the key/value repository behind the credential store and the
// per-user preferences. Get returns "" for keys that were never set.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// JSONStore implements Store using a JSON object in a single file.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates a new JSONStore with the given file path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the storage file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Get reads a single key from the file.
func (s *JSONStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Set writes a single key, keeping all others.
// Creates the directory if it doesn't exist.
func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if value == "" {
		delete(values, key)
	} else {
		values[key] = value
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// load reads the whole file. A missing file is an empty store.
func (s *JSONStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	values := map[string]string{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return values, nil
}

// MemoryStore is an in-process Store, used by tests and as a last resort.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates a MemoryStore seeded with the given values.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
		return nil
	}
	s.values[key] = value
	return nil
}

// Token returns the stored auth token, trimmed. Empty means no token.
func Token(s Store) (string, error) {
	token, err := s.Get(KeyToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(token), nil
}

// Tags decodes a JSON array of tag names stored under key.
// An unset key yields an empty list.
func Tags(s Store, key string) ([]string, error) {
	raw, err := s.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// SetTags overwrites the tag list stored under key.
func SetTags(s Store, key string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

// Open opens the store for the configured backend inside dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "prefs.db"))
	case BackendJSON:
		return NewJSONStore(filepath.Join(dir, "prefs.json")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Close closes s if it holds resources.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
