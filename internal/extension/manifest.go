// Package extension reads extension metadata from its package.json manifest.
package extension

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/models"
)

// ManifestFile is the manifest name inside the extension root
const ManifestFile = "package.json"

// Load reads the manifest from the extension root directory
func Load(fs filesystem.FileSystem, root string) (*models.Extension, error) {
	path := filepath.Join(root, ManifestFile)
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extension manifest: %w", err)
	}

	ext, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid extension manifest %s: %w", path, err)
	}
	return ext, nil
}

// Parse extracts the extension metadata from package.json content
func Parse(data []byte) (*models.Extension, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("malformed JSON")
	}

	fields := gjson.GetManyBytes(data, "publisher", "name", "displayName", "version", "bugs", "homepage")

	ext := &models.Extension{
		Publisher:     fields[0].String(),
		Name:          fields[1].String(),
		DisplayName:   fields[2].String(),
		Version:       fields[3].String(),
		RepositoryURL: repositoryURL(gjson.GetBytes(data, "repository")),
		IssuesURL:     urlOf(fields[4]),
		HomepageURL:   fields[5].String(),
	}

	if ext.Publisher == "" {
		return nil, fmt.Errorf("missing publisher")
	}
	if ext.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if ext.DisplayName == "" {
		ext.DisplayName = ext.Name
	}
	return ext, nil
}

// repositoryURL accepts both the object and the shorthand string forms
// and drops the ".git" suffix, giving the web URL issue links hang off.
func repositoryURL(repo gjson.Result) string {
	return strings.TrimSuffix(urlOf(repo), ".git")
}

// urlOf reads fields that are either a plain string or an object with a url
func urlOf(field gjson.Result) string {
	if field.IsObject() {
		return field.Get("url").String()
	}
	return field.String()
}
