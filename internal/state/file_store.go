package state

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
)

const fileStoreFormat = 1

var _ Store = (*FileStore)(nil)

// fileStoreData is the on-disk layout of a FileStore
type fileStoreData struct {
	Version   int               `json:"version"`
	UpdatedAt string            `json:"updatedAt"`
	Values    map[string]string `json:"values"`
}

// FileStore persists values in a JSON file. Every Set rewrites the whole file.
type FileStore struct {
	mu   sync.Mutex
	fs   filesystem.FileSystem
	path string
}

// NewFileStore creates a new FileStore writing to path
func NewFileStore(fs filesystem.FileSystem, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the location of the backing file
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}

	value, ok := data.Values[key]
	return value, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	data.Values[key] = value
	data.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state file: %w", err)
	}

	if dir := filepath.Dir(f.path); !f.fs.Exists(dir) {
		if err := f.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	if err := f.fs.WriteFile(f.path, append(encoded, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// read loads the file; a missing or empty file is an empty store
func (f *FileStore) read() (*fileStoreData, error) {
	empty := &fileStoreData{Version: fileStoreFormat, Values: make(map[string]string)}

	if !f.fs.Exists(f.path) {
		return empty, nil
	}

	raw, err := f.fs.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(raw) == 0 {
		return empty, nil
	}

	var data fileStoreData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	if data.Values == nil {
		data.Values = make(map[string]string)
	}
	return &data, nil
}
