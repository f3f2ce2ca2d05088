// Package store persists harvested records as a local file tree:
//
//	{root}/{space}/list/{scope}.json
//	{root}/{space}/complete/{scope}/{artifact}/{id}.{json|md|html}
//	{root}/{space}/empty_ids.json
//
// Writes are atomic (temp file then rename) so a half-written artifact is
// never observable. The caller is single-threaded; no locking is needed.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound means no cache entry exists for the identifier
	ErrNotFound = errors.New("cache entry not found")
	// ErrCorrupt means the cached artifact failed to parse; callers treat
	// the entry as absent and refetch
	ErrCorrupt = errors.New("cache entry corrupt")
)

// Store is a file-tree cache rooted at a data directory
type Store struct {
	root string
}

// New creates a store rooted at the given directory
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory
func (s *Store) Root() string {
	return s.root
}

// Space returns the resource-space view for one source name
func (s *Store) Space(name string) Space {
	return Space{dir: filepath.Join(s.root, name)}
}

// Space is one resource space inside the cache tree
type Space struct {
	dir string
}

// Dir returns the space's directory
func (sp Space) Dir() string {
	return sp.dir
}

// ListPath returns the path of the cached identifier list for one scope
func (sp Space) ListPath(scope string) string {
	return filepath.Join(sp.dir, "list", scope+".json")
}

// ArtifactPath returns the path of one per-identifier artifact
func (sp Space) ArtifactPath(scope, artifact, filename string) string {
	return filepath.Join(sp.dir, "complete", scope, artifact, filename)
}

// MarkerPath returns the path of the empty-ID marker file
func (sp Space) MarkerPath() string {
	return filepath.Join(sp.dir, "empty_ids.json")
}

// Exists reports whether a cache entry is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadJSON reads and unmarshals a cached JSON artifact. Returns ErrNotFound
// if absent and ErrCorrupt if the content is not valid JSON.
func ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return nil
}

// WriteJSON marshals v and writes it atomically, creating parent directories
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// WriteRawJSON validates raw JSON bytes and writes them atomically
func WriteRawJSON(path string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: refusing to cache invalid JSON at %s", ErrCorrupt, path)
	}
	return writeAtomic(path, data)
}

// ReadText reads a cached text artifact. Returns ErrNotFound if absent.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText writes a text artifact atomically, creating parent directories
func WriteText(path string, text string) error {
	return writeAtomic(path, []byte(text))
}

// Delete removes a cache entry; deleting an absent entry is not an error
func Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// writeAtomic writes to a temp file in the target directory then renames it
// into place, so readers never observe a partial write
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish %s: %w", path, err)
	}
	return nil
}
