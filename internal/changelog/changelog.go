// Package changelog exports the content file changelog as a CHANGELOG.md
// document.
package changelog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/models"
)

const (
	// FileName is the document written next to package.json
	FileName = "CHANGELOG.md"

	// CustomTemplatePath overrides the default template, relative to the extension root
	CustomTemplatePath = "vscode-whats-new/changelog.tmpl"

	// UnreleasedNumber names the release of entries listed before any VERSION marker
	UnreleasedNumber = "Unreleased"
)

const defaultTemplate = `{{- range $i, $release := .Releases}}{{if $i}}

{{end}}## {{$release.Number}}{{with $release.Date}} - {{.}}{{end}}
{{- range $release.Sections}}

### {{.Title}}
{{range .Items}}
- {{.FirstLine}}{{with .Ref}} ([{{.Label}}]({{.URL}}){{with .Kudos}} by {{.}}{{end}}){{end}}
{{- range .RestLines}}
  {{.}}
{{- end}}
{{- end}}
{{- end}}
{{- end}}`

var defaultTmpl = template.Must(template.New("changelog").Funcs(sprig.TxtFuncMap()).Parse(defaultTemplate))

var sectionOrder = []struct {
	kind  models.ChangeLogKind
	title string
}{
	{models.ChangeLogNew, "Added"},
	{models.ChangeLogChanged, "Changed"},
	{models.ChangeLogFixed, "Fixed"},
	{models.ChangeLogInternal, "Internal"},
}

// Data is what the changelog template is executed with
type Data struct {
	Extension *models.Extension
	Releases  []Release
}

// Release groups the entries between two VERSION markers
type Release struct {
	Number   string
	Date     string
	Sections []Section
}

// Section holds the items of one kind, in content file order
type Section struct {
	Kind  models.ChangeLogKind
	Title string
	Items []Item
}

// Item is one rendered changelog entry
type Item struct {
	FirstLine string
	RestLines []string
	Ref       *Ref
}

// Ref links an item to its issue or pull request
type Ref struct {
	Label string
	URL   string
	Kudos string
}

// Changelog formats and writes CHANGELOG.md files
type Changelog struct {
	fs filesystem.FileSystem
}

// NewChangelog creates a new Changelog instance
func NewChangelog(fs filesystem.FileSystem) *Changelog {
	return &Changelog{fs: fs}
}

// Format renders the releases of the changelog, newest first, without the
// document preamble. A template at CustomTemplatePath under root replaces
// the default one.
func (cl *Changelog) Format(root string, ext *models.Extension, entries []models.ChangeLogEntry) (string, error) {
	tmpl, err := cl.template(root)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, BuildData(ext, entries)); err != nil {
		return "", fmt.Errorf("failed to execute changelog template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// Write regenerates root/CHANGELOG.md. Whatever precedes the first release
// heading of an existing file is kept.
func (cl *Changelog) Write(root string, ext *models.Extension, entries []models.ChangeLogEntry) (string, error) {
	body, err := cl.Format(root, ext, entries)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, FileName)

	preamble := defaultPreamble(ext)
	if cl.fs.Exists(path) {
		data, err := cl.fs.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read changelog: %w", err)
		}
		if existing, ok := existingPreamble(string(data)); ok {
			preamble = existing
		}
	}

	var buf bytes.Buffer
	buf.WriteString(preamble)
	buf.WriteString(body)
	buf.WriteString("\n")

	if err := cl.fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write changelog: %w", err)
	}

	return path, nil
}

func (cl *Changelog) template(root string) (*template.Template, error) {
	path := filepath.Join(root, CustomTemplatePath)
	if root == "" || !cl.fs.Exists(path) {
		return defaultTmpl, nil
	}

	data, err := cl.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read changelog template: %w", err)
	}

	tmpl, err := template.New("changelog").Funcs(sprig.TxtFuncMap()).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse changelog template: %w", err)
	}
	return tmpl, nil
}

func defaultPreamble(ext *models.Extension) string {
	return fmt.Sprintf("# Changelog\n\nAll notable changes to the %q extension will be documented in this file.\n\n", ext.DisplayName)
}

// existingPreamble returns the text before the first "## " heading, if the
// document has one and starts with something else.
func existingPreamble(doc string) (string, bool) {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "## ") {
			if i == 0 {
				return "", false
			}
			return strings.Join(lines[:i], "\n") + "\n", true
		}
	}
	return "", false
}

// BuildData groups entries into releases. Entries before the first VERSION
// marker land in an Unreleased release.
func BuildData(ext *models.Extension, entries []models.ChangeLogEntry) Data {
	data := Data{Extension: ext}

	var current *releaseBuilder
	var builders []*releaseBuilder
	for _, entry := range entries {
		if entry.Kind == models.ChangeLogVersion {
			current = &releaseBuilder{number: entry.Version.ReleaseNumber, date: entry.Version.ReleaseDate}
			builders = append(builders, current)
			continue
		}
		if current == nil {
			current = &releaseBuilder{number: UnreleasedNumber}
			builders = append(builders, current)
		}
		current.add(entry, ext.RepositoryURL)
	}

	for _, b := range builders {
		data.Releases = append(data.Releases, b.build())
	}
	return data
}

type releaseBuilder struct {
	number string
	date   string
	items  map[models.ChangeLogKind][]Item
}

func (b *releaseBuilder) add(entry models.ChangeLogEntry, repositoryURL string) {
	var item Item
	switch entry.Variant() {
	case models.VariantIssue:
		item.FirstLine, item.RestLines = splitMessage(entry.Issue.Message)
		item.Ref = buildRef(entry.Issue, repositoryURL)
	default:
		item.FirstLine, item.RestLines = splitMessage(entry.Message)
	}
	if item.FirstLine == "" {
		return
	}

	if b.items == nil {
		b.items = make(map[models.ChangeLogKind][]Item)
	}
	b.items[entry.Kind] = append(b.items[entry.Kind], item)
}

func (b *releaseBuilder) build() Release {
	release := Release{Number: b.number, Date: b.date}
	for _, s := range sectionOrder {
		if items := b.items[s.kind]; len(items) > 0 {
			release.Sections = append(release.Sections, Section{Kind: s.kind, Title: s.title, Items: items})
		}
	}
	return release
}

func buildRef(issue *models.IssueRef, repositoryURL string) *Ref {
	id := strconv.Itoa(issue.ID)

	if issue.Kind == models.IssueKindPR {
		return &Ref{
			Label: "PR #" + id,
			URL:   repositoryURL + "/pull/" + id,
			Kudos: issue.Kudos,
		}
	}

	return &Ref{
		Label: "Issue #" + id,
		URL:   repositoryURL + "/issues/" + id,
	}
}

func splitMessage(message string) (string, []string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", nil
	}

	lines := strings.Split(message, "\n")

	var rest []string
	for _, line := range lines[1:] {
		if line = strings.TrimSpace(line); line != "" {
			rest = append(rest, line)
		}
	}

	return strings.TrimSpace(lines[0]), rest
}
