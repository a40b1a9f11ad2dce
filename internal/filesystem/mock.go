package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	mu         sync.Mutex
	files      map[string]*MockFile
	currentDir string
}

// MockFile represents a file or directory in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	IsDir   bool
}

// NewMockFileSystem creates a new MockFileSystem rooted at /workspace
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
	}
	mfs.addDirLocked("/workspace")
	return mfs
}

// AddFile adds a file to the mock filesystem, creating parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{Content: content, Mode: 0644}
	mfs.addDirLocked(filepath.Dir(cleanPath))
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.addDirLocked(filepath.Clean(path))
}

func (mfs *MockFileSystem) addDirLocked(dir string) {
	for dir != "." && dir != "/" {
		if _, exists := mfs.files[dir]; exists {
			return
		}
		mfs.files[dir] = &MockFile{Mode: 0755 | fs.ModeDir, IsDir: true}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)

	// Parent directory must exist, as with os.WriteFile
	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if parent, exists := mfs.files[dir]; !exists || !parent.IsDir {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.files[cleanPath] = &MockFile{Content: content, Mode: perm}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if file, exists := mfs.files[cleanPath]; exists && !file.IsDir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}
	mfs.addDirLocked(cleanPath)
	return nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
	mfs.AddDir(dir)
}

// Paths returns every file (not directory) path under root, sorted (for assertions)
func (mfs *MockFileSystem) Paths(root string) []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanRoot := filepath.Clean(root)
	var paths []string
	for p, f := range mfs.files {
		if f.IsDir {
			continue
		}
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
