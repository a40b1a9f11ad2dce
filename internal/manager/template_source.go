package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/ui"
)

// ErrTemplateRead is returned when a page template cannot be read
var ErrTemplateRead = errors.New("failed to read template")

// TemplateSource reads page templates by path, relative to the extension root
type TemplateSource interface {
	ReadTemplate(path string) (string, error)
}

var (
	_ TemplateSource = (*FileTemplateSource)(nil)
	_ TemplateSource = EmbeddedTemplateSource{}
	_ TemplateSource = LayeredTemplateSource(nil)
)

// FileTemplateSource reads templates from the extension directory
type FileTemplateSource struct {
	fs   filesystem.FileSystem
	root string
}

// NewFileTemplateSource creates a new FileTemplateSource for the extension at root
func NewFileTemplateSource(fs filesystem.FileSystem, root string) *FileTemplateSource {
	return &FileTemplateSource{fs: fs, root: root}
}

func (s *FileTemplateSource) ReadTemplate(path string) (string, error) {
	data, err := s.fs.ReadFile(filepath.Join(s.root, path))
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrTemplateRead, path, err)
	}
	return string(data), nil
}

// EmbeddedTemplateSource serves the built-in template and stylesheet
type EmbeddedTemplateSource struct{}

func (EmbeddedTemplateSource) ReadTemplate(path string) (string, error) {
	switch filepath.ToSlash(path) {
	case ui.TemplatePath:
		return ui.Template(), nil
	case ui.StylesheetPath:
		return ui.Stylesheet(), nil
	default:
		return "", fmt.Errorf("%w %s: %w", ErrTemplateRead, path, fs.ErrNotExist)
	}
}

// LayeredTemplateSource tries each source in order, moving on only when
// a template does not exist.
type LayeredTemplateSource []TemplateSource

func (l LayeredTemplateSource) ReadTemplate(path string) (string, error) {
	err := fmt.Errorf("%w %s: %w", ErrTemplateRead, path, fs.ErrNotExist)
	for _, source := range l {
		var text string
		text, err = source.ReadTemplate(path)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", err
}
