package content

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/markup"
	"github.com/alefragnani/vscode-whats-new/internal/models"
)

// DefaultPath is where the content file lives, relative to the extension root
const DefaultPath = "vscode-whats-new/content.md"

var (
	_ Provider            = (*FileProvider)(nil)
	_ SponsorProvider     = (*FileProvider)(nil)
	_ SocialMediaProvider = (*FileProvider)(nil)
)

// document is the YAML frontmatter of a content file. The markdown body
// below the frontmatter is the header message.
type document struct {
	Header          headerDoc               `yaml:"header"`
	ChangeLog       []entryDoc              `yaml:"changelog"`
	Sponsors        []models.Sponsor        `yaml:"sponsors,omitempty"`
	SupportChannels []models.SupportChannel `yaml:"supportChannels,omitempty"`
	SocialMedias    []models.SocialMedia    `yaml:"socialMedias,omitempty"`
}

type headerDoc struct {
	Logo logoDoc `yaml:"logo"`

	// Message is used when the file has no body
	Message string `yaml:"message,omitempty"`
}

type logoDoc struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type entryDoc struct {
	Kind    string      `yaml:"kind,omitempty"`
	Message string      `yaml:"message,omitempty"`
	Version *versionDoc `yaml:"version,omitempty"`
	Issue   *issueDoc   `yaml:"issue,omitempty"`
}

type versionDoc struct {
	ReleaseNumber string `yaml:"releaseNumber"`
	ReleaseDate   string `yaml:"releaseDate"`
}

type issueDoc struct {
	Message string `yaml:"message"`
	ID      int    `yaml:"id"`
	Kind    string `yaml:"kind"`
	Kudos   string `yaml:"kudos,omitempty"`
}

// FileProvider serves content read from a markdown file with YAML frontmatter:
//
//	---
//	header:
//	  logo: {width: 146, height: 146}
//	changelog:
//	  - version: {releaseNumber: "13.5.0", releaseDate: "March 2024"}
//	  - kind: NEW
//	    issue: {message: Adds walkthrough, id: 42, kind: PR, kudos: "@octocat"}
//	supportChannels:
//	  - {title: Sponsor, link: "https://github.com/sponsors/me", message: Become a sponsor}
//	---
//	**Bookmarks** helps you to navigate in your code.
//
// Entries can be added and saved back, for the "add" command.
type FileProvider struct {
	fs   filesystem.FileSystem
	path string

	doc  document
	body string

	header    models.Header
	changeLog []models.ChangeLogEntry
}

// NewFileProvider creates an empty provider that will be saved to path
func NewFileProvider(fs filesystem.FileSystem, path string) *FileProvider {
	return &FileProvider{fs: fs, path: path, changeLog: []models.ChangeLogEntry{}}
}

// LoadFile reads and parses the content file at path
func LoadFile(fs filesystem.FileSystem, path string) (*FileProvider, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	p := NewFileProvider(fs, path)
	if err := p.parse(data); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return p, nil
}

// Path returns the location of the content file
func (p *FileProvider) Path() string {
	return p.path
}

func (p *FileProvider) parse(data []byte) error {
	var doc document
	rest, err := frontmatter.Parse(bytes.NewReader(data), &doc)
	if err != nil {
		return fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	changeLog, err := entriesFromDocs(doc.ChangeLog)
	if err != nil {
		return err
	}

	body := strings.TrimSpace(string(rest))
	message := doc.Header.Message
	if body != "" {
		if message, err = markup.InlineMarkdownToHTML(body); err != nil {
			return err
		}
	}

	p.doc = doc
	p.body = body
	p.changeLog = changeLog
	p.header = models.Header{
		Logo: models.Image{
			Width:  doc.Header.Logo.Width,
			Height: doc.Header.Logo.Height,
		},
		Message: message,
	}
	return nil
}

func (p *FileProvider) ProvideHeader(logoURL string) models.Header {
	header := p.header
	header.Logo.Src = logoURL
	return header
}

func (p *FileProvider) ProvideChangeLog() []models.ChangeLogEntry {
	return cloneOrEmpty(p.changeLog)
}

func (p *FileProvider) ProvideSupportChannels() []models.SupportChannel {
	return cloneOrEmpty(p.doc.SupportChannels)
}

func (p *FileProvider) ProvideSponsors() []models.Sponsor {
	return cloneOrEmpty(p.doc.Sponsors)
}

func (p *FileProvider) ProvideSocialMedias() []models.SocialMedia {
	return cloneOrEmpty(p.doc.SocialMedias)
}

// AddRelease starts a new release section at the top of the changelog
func (p *FileProvider) AddRelease(releaseNumber, releaseDate string) {
	entry := models.NewVersionEntry(releaseNumber, releaseDate)
	p.changeLog = append([]models.ChangeLogEntry{entry}, p.changeLog...)
}

// AddEntry adds entry to the newest release section, right after its VERSION
// marker. Without any marker the entry goes to the top of the changelog.
func (p *FileProvider) AddEntry(entry models.ChangeLogEntry) error {
	if entry.Kind == models.ChangeLogVersion {
		return fmt.Errorf("use AddRelease to add a VERSION entry")
	}
	if !entry.Kind.IsValid() {
		return fmt.Errorf("invalid changelog kind: %s", entry.Kind)
	}

	at := 0
	for i, existing := range p.changeLog {
		if existing.Variant() == models.VariantVersion {
			at = i + 1
			break
		}
	}

	changeLog := make([]models.ChangeLogEntry, 0, len(p.changeLog)+1)
	changeLog = append(changeLog, p.changeLog[:at]...)
	changeLog = append(changeLog, entry)
	changeLog = append(changeLog, p.changeLog[at:]...)
	p.changeLog = changeLog
	return nil
}

// Save writes the content back to its file, keeping the markdown body as is
func (p *FileProvider) Save() error {
	doc := p.doc
	doc.ChangeLog = entriesToDocs(p.changeLog)

	matter, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode content frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(matter)
	buf.WriteString("---\n")
	if p.body != "" {
		buf.WriteString("\n")
		buf.WriteString(p.body)
		buf.WriteString("\n")
	}

	if dir := filepath.Dir(p.path); !p.fs.Exists(dir) {
		if err := p.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create content directory: %w", err)
		}
	}

	if err := p.fs.WriteFile(p.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write content file: %w", err)
	}
	return nil
}

func entriesFromDocs(docs []entryDoc) ([]models.ChangeLogEntry, error) {
	entries := make([]models.ChangeLogEntry, 0, len(docs))
	for i, d := range docs {
		entry, err := d.toEntry()
		if err != nil {
			return nil, fmt.Errorf("changelog entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (d entryDoc) toEntry() (models.ChangeLogEntry, error) {
	if d.Version != nil {
		if d.Kind != "" && d.Kind != string(models.ChangeLogVersion) {
			return models.ChangeLogEntry{}, fmt.Errorf("version entries must have kind VERSION, got %s", d.Kind)
		}
		if d.Version.ReleaseNumber == "" {
			return models.ChangeLogEntry{}, fmt.Errorf("version entry has no releaseNumber")
		}
		return models.NewVersionEntry(d.Version.ReleaseNumber, d.Version.ReleaseDate), nil
	}

	kind, err := models.ParseChangeLogKind(d.Kind)
	if err != nil {
		return models.ChangeLogEntry{}, err
	}
	if kind == models.ChangeLogVersion {
		return models.ChangeLogEntry{}, fmt.Errorf("VERSION entry has no version")
	}

	switch {
	case d.Issue != nil && d.Message != "":
		return models.ChangeLogEntry{}, fmt.Errorf("entry has both message and issue")
	case d.Issue != nil:
		issueKind, err := models.ParseIssueKind(d.Issue.Kind)
		if err != nil {
			return models.ChangeLogEntry{}, err
		}
		if d.Issue.ID <= 0 {
			return models.ChangeLogEntry{}, fmt.Errorf("issue id must be positive, got %d", d.Issue.ID)
		}
		return models.NewIssueEntry(kind, models.IssueRef{
			Message: d.Issue.Message,
			ID:      d.Issue.ID,
			Kind:    issueKind,
			Kudos:   d.Issue.Kudos,
		}), nil
	default:
		return models.NewMessageEntry(kind, d.Message), nil
	}
}

func entriesToDocs(entries []models.ChangeLogEntry) []entryDoc {
	docs := make([]entryDoc, 0, len(entries))
	for _, e := range entries {
		switch e.Variant() {
		case models.VariantVersion:
			docs = append(docs, entryDoc{Version: &versionDoc{
				ReleaseNumber: e.Version.ReleaseNumber,
				ReleaseDate:   e.Version.ReleaseDate,
			}})
		case models.VariantIssue:
			docs = append(docs, entryDoc{Kind: e.Kind.String(), Issue: &issueDoc{
				Message: e.Issue.Message,
				ID:      e.Issue.ID,
				Kind:    string(e.Issue.Kind),
				Kudos:   e.Issue.Kudos,
			}})
		default:
			docs = append(docs, entryDoc{Kind: e.Kind.String(), Message: e.Message})
		}
	}
	return docs
}
