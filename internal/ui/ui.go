// Package ui embeds the default page template and stylesheet.
package ui

import (
	"embed"
	"io/fs"
)

const (
	// TemplatePath is the default template, relative to the extension root
	TemplatePath = "vscode-whats-new/ui/whats-new.html"

	// StylesheetPath is the default stylesheet, relative to the extension root
	StylesheetPath = "vscode-whats-new/ui/main.css"

	templateFile   = "assets/whats-new.html"
	stylesheetFile = "assets/main.css"
)

//go:embed assets/whats-new.html assets/main.css
var assets embed.FS

// Template returns the embedded default page template
func Template() string {
	data, err := assets.ReadFile(templateFile)
	if err != nil {
		panic("ui: embedded template missing: " + err.Error())
	}
	return string(data)
}

// Stylesheet returns the embedded default stylesheet
func Stylesheet() string {
	data, err := assets.ReadFile(stylesheetFile)
	if err != nil {
		panic("ui: embedded stylesheet missing: " + err.Error())
	}
	return string(data)
}

// RootFS exposes the embedded files at their paths relative to the
// extension root, e.g. "vscode-whats-new/ui/main.css".
func RootFS() fs.FS {
	return rootFS{}
}

type rootFS struct{}

func (rootFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	switch name {
	case TemplatePath:
		return assets.Open(templateFile)
	case StylesheetPath:
		return assets.Open(stylesheetFile)
	default:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
}
