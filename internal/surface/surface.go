// Package surface displays rendered pages.
package surface

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
)

// Page is a rendered "what's new" page
type Page struct {
	Title string
	HTML  string
}

// Surface shows pages to the user. Asset paths in a page must first be
// rewritten with AssetURI so the surface can resolve them.
type Surface interface {
	Show(ctx context.Context, page Page) error

	// AssetURI maps a path relative to the extension root to a URI the
	// surface can load. An empty path gives the root itself.
	AssetURI(path string) string

	// CSPSource is the source expression pages use in their content security policy
	CSPSource() string
}

var _ Surface = (*FileSurface)(nil)

// FileSurface writes each shown page to an HTML file, to be opened in a browser.
type FileSurface struct {
	mu     sync.Mutex
	fs     filesystem.FileSystem
	root   string
	output string
	shown  int
}

// NewFileSurface creates a FileSurface for the extension at root, writing pages to output
func NewFileSurface(fs filesystem.FileSystem, root, output string) *FileSurface {
	return &FileSurface{fs: fs, root: root, output: output}
}

func (s *FileSurface) Show(ctx context.Context, page Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.output); !s.fs.Exists(dir) {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := s.fs.WriteFile(s.output, []byte(page.HTML), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	s.shown++
	return nil
}

func (s *FileSurface) AssetURI(path string) string {
	return "file://" + filepath.ToSlash(filepath.Join(s.root, path))
}

func (s *FileSurface) CSPSource() string {
	return "file:"
}

// Output returns the file pages are written to
func (s *FileSurface) Output() string {
	return s.output
}

// Shown returns how many pages were written
func (s *FileSurface) Shown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

// cleanAssetPath turns a root relative path into slash form without leading or trailing slashes
func cleanAssetPath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.Trim(path, "/")
	if path == "." {
		return ""
	}
	return path
}
