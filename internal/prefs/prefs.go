// Package prefs persists user preferences as a flat TOML document under the
// user's configuration directory. All values are stored as strings; typed
// accessors parse on read and treat unparseable values as absent, so a
// hand-edited file can never fail an application start.
package prefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/vk/bootstrapgo/internal/errutil"
	"github.com/vk/bootstrapgo/internal/fsutil"
)

// FileName is the preferences file name inside the per-application
// configuration directory.
const FileName = "prefs.toml"

// Store holds the preferences of one application. It is safe for concurrent
// use; mutations stay in memory until Sync is called.
type Store struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// Open loads the preferences of the named application from
// os.UserConfigDir()/<identity>/prefs.toml. A missing file yields an empty
// store.
func Open(ctx context.Context, identity string) (*Store, error) {
	if identity == "" {
		return nil, errors.New("preferences identity must not be empty")
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return OpenAt(ctx, filepath.Join(configDir, identity, FileName))
}

// OpenAt loads a preferences store from an explicit file path. Entries whose
// value is not a TOML scalar are skipped.
func OpenAt(ctx context.Context, path string) (*Store, error) {
	store := &Store{path: path, values: make(map[string]string)}

	raw := make(map[string]any)
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read preferences %s: %w", path, err)
	}

	for key, value := range raw {
		text, ok := stringify(value)
		if !ok {
			errutil.Ignore(ctx, fmt.Errorf("preference '%s' holds a non-scalar value", key))
			continue
		}
		store.values[key] = text
	}
	return store, nil
}

// stringify renders the TOML scalar types to their stored string form.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	}
	return "", false
}

// Path returns the file the store syncs to.
func (s *Store) Path() string {
	return s.path
}

// Get returns the raw string value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Put stores a string value under key.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Remove drops the value stored under key.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Int64 returns the value stored under key parsed as an integer, or def when
// the key is absent or the stored value does not parse.
func (s *Store) Int64(ctx context.Context, key string, def int64) int64 {
	text, ok := s.Get(key)
	if !ok {
		return def
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		errutil.Ignore(ctx, fmt.Errorf("preference '%s' is not an integer: %w", key, err))
		return def
	}
	return value
}

// PutInt64 stores an integer value under key.
func (s *Store) PutInt64(key string, value int64) {
	s.Put(key, strconv.FormatInt(value, 10))
}

// Bool returns the value stored under key parsed as a boolean, or def when
// the key is absent or the stored value does not parse.
func (s *Store) Bool(ctx context.Context, key string, def bool) bool {
	text, ok := s.Get(key)
	if !ok {
		return def
	}
	value, err := strconv.ParseBool(text)
	if err != nil {
		errutil.Ignore(ctx, fmt.Errorf("preference '%s' is not a boolean: %w", key, err))
		return def
	}
	return value
}

// PutBool stores a boolean value under key.
func (s *Store) PutBool(key string, value bool) {
	s.Put(key, strconv.FormatBool(value))
}

// Directory returns the directory path stored under key. With validate set,
// a value that does not name an existing directory counts as absent.
func (s *Store) Directory(ctx context.Context, key string, validate bool) (string, bool) {
	text, ok := s.Get(key)
	if !ok || text == "" {
		return "", false
	}
	if validate {
		info, err := os.Stat(text)
		if err != nil || !info.IsDir() {
			errutil.Ignore(ctx, fmt.Errorf("preference '%s' does not name a directory: %s", key, text))
			return "", false
		}
	}
	return text, true
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored preferences.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Sync writes the store back to its file atomically, creating the parent
// directory when needed.
func (s *Store) Sync() error {
	s.mu.RLock()
	snapshot := make(map[string]string, len(s.values))
	for key, value := range s.values {
		snapshot[key] = value
	}
	s.mu.RUnlock()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write preferences %s: %w", s.path, err)
	}
	return nil
}
