package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	appDirName      = "ai-construction-admin"
	storageFileName = "storage.json"
)

// DefaultPath returns the storage document location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, storageFileName), nil
}

// FileArea keeps every key in one JSON document. Each mutation rewrites
// the whole document through a temp file and rename, so another process
// reading concurrently sees either the old or the new document.
type FileArea struct {
	mu   sync.Mutex
	path string
}

// NewFileArea prepares the parent directory of path.
func NewFileArea(path string) (*FileArea, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileArea{path: path}, nil
}

// Path returns the backing document location.
func (a *FileArea) Path() string {
	return a.path
}

func (a *FileArea) Get(_ context.Context, key string) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (a *FileArea) SetAll(_ context.Context, values map[string]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc := a.loadForWrite()
	for k, v := range values {
		doc[k] = v
	}
	return a.save(doc)
}

func (a *FileArea) Delete(_ context.Context, keys ...string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc := a.loadForWrite()
	for _, k := range keys {
		delete(doc, k)
	}
	return a.save(doc)
}

func (a *FileArea) load() (map[string]string, error) {
	b, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	doc := map[string]string{}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode storage: %w", err)
	}
	return doc, nil
}

// loadForWrite starts from an empty document when the current one cannot
// be read, so a corrupt file is replaced rather than propagated.
func (a *FileArea) loadForWrite() map[string]string {
	doc, err := a.load()
	if err != nil {
		return map[string]string{}
	}
	return doc
}

func (a *FileArea) save(doc map[string]string) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(a.path), "."+storageFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp storage: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp storage: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod storage: %w", err)
	}
	if err := os.Rename(tmpName, a.path); err != nil {
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}
