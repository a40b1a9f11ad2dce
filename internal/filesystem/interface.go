package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over the file operations needed to read
// templates and content files and to persist state, for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Exists(path string) bool
	Getwd() (string, error)
}
