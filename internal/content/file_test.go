package content

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/models"
)

const bookmarksContent = `---
header:
  logo:
    width: 146
    height: 146
changelog:
  - version:
      releaseNumber: "13.5.0"
      releaseDate: "March 2024"
  - kind: NEW
    issue:
      message: Adds walkthrough
      id: 42
      kind: PR
      kudos: "@octocat"
  - kind: FIXED
    issue:
      message: Sticky selection
      id: 7
      kind: Issue
  - version:
      releaseNumber: "13.4.0"
      releaseDate: "January 2024"
  - kind: CHANGED
    message: Improved labels
sponsors:
  - title: Learn more about Codestream
    link: https://sponsorlink.codestream.com/?utm_source=vscmarket
    image:
      light: https://alt-images.codestream.com/codestream_logo_bookmarks.png
      dark: https://alt-images.codestream.com/codestream_logo_bookmarks.png
    width: 35
    message: Eliminate context switching
    extra: Learn more
supportChannels:
  - title: Become a sponsor on GitHub
    link: https://github.com/sponsors/alefragnani
    message: Become a Sponsor
socialMedias:
  - title: Follow me on Twitter
    link: https://www.twitter.com/alefragnani
---
**Bookmarks** helps you to navigate in your code.
`

func TestLoadFile(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ext/vscode-whats-new/content.md", []byte(bookmarksContent))

	p, err := LoadFile(mfs, "/ext/vscode-whats-new/content.md")
	require.NoError(t, err)

	header := p.ProvideHeader("vscode-resource://ext/images/logo.png")
	require.Equal(t, models.Header{
		Logo: models.Image{
			Src:    "vscode-resource://ext/images/logo.png",
			Width:  146,
			Height: 146,
		},
		Message: "<strong>Bookmarks</strong> helps you to navigate in your code.",
	}, header)

	require.Equal(t, []models.ChangeLogEntry{
		models.NewVersionEntry("13.5.0", "March 2024"),
		models.NewIssueEntry(models.ChangeLogNew, models.IssueRef{Message: "Adds walkthrough", ID: 42, Kind: models.IssueKindPR, Kudos: "@octocat"}),
		models.NewIssueEntry(models.ChangeLogFixed, models.IssueRef{Message: "Sticky selection", ID: 7, Kind: models.IssueKindIssue}),
		models.NewVersionEntry("13.4.0", "January 2024"),
		models.NewMessageEntry(models.ChangeLogChanged, "Improved labels"),
	}, p.ProvideChangeLog())

	sponsors := p.ProvideSponsors()
	require.Len(t, sponsors, 1)
	require.Equal(t, 35, sponsors[0].Width)
	require.Equal(t, "Learn more", sponsors[0].Extra)

	require.Equal(t, []models.SupportChannel{{
		Title:   "Become a sponsor on GitHub",
		Link:    "https://github.com/sponsors/alefragnani",
		Message: "Become a Sponsor",
	}}, p.ProvideSupportChannels())

	require.Equal(t, []models.SocialMedia{{
		Title: "Follow me on Twitter",
		Link:  "https://www.twitter.com/alefragnani",
	}}, p.ProvideSocialMedias())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filesystem.NewMockFileSystem(), "/ext/content.md")
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadFile_HeaderMessageWithoutBody(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ext/content.md", []byte("---\nheader:\n  message: Plain message\nchangelog: []\n---\n"))

	p, err := LoadFile(mfs, "/ext/content.md")
	require.NoError(t, err)
	require.Equal(t, "Plain message", p.ProvideHeader("logo.png").Message)

	// optional sections are empty, never nil
	require.NotNil(t, p.ProvideChangeLog())
	require.Empty(t, p.ProvideChangeLog())
	require.NotNil(t, p.ProvideSponsors())
	require.Empty(t, p.ProvideSocialMedias())
}

func TestLoadFile_InvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		wantErr string
	}{
		{
			name:    "unknown kind",
			entry:   "  - kind: ADDED\n    message: x\n",
			wantErr: "invalid changelog kind",
		},
		{
			name:    "version kind without version",
			entry:   "  - kind: VERSION\n",
			wantErr: "VERSION entry has no version",
		},
		{
			name:    "version payload with another kind",
			entry:   "  - kind: NEW\n    version: {releaseNumber: \"1.0.0\", releaseDate: May}\n",
			wantErr: "must have kind VERSION",
		},
		{
			name:    "message and issue",
			entry:   "  - kind: NEW\n    message: x\n    issue: {message: y, id: 1, kind: Issue}\n",
			wantErr: "both message and issue",
		},
		{
			name:    "unknown issue kind",
			entry:   "  - kind: NEW\n    issue: {message: y, id: 1, kind: MR}\n",
			wantErr: "invalid issue kind",
		},
		{
			name:    "non positive issue id",
			entry:   "  - kind: FIXED\n    issue: {message: y, id: 0, kind: Issue}\n",
			wantErr: "issue id must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := filesystem.NewMockFileSystem()
			mfs.AddFile("/ext/content.md", []byte("---\nchangelog:\n"+tt.entry+"---\n"))

			_, err := LoadFile(mfs, "/ext/content.md")
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
			require.Contains(t, err.Error(), "changelog entry 1")
		})
	}
}

func TestFileProvider_AddEntryAndSave(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ext/vscode-whats-new/content.md", []byte(bookmarksContent))

	p, err := LoadFile(mfs, "/ext/vscode-whats-new/content.md")
	require.NoError(t, err)

	require.NoError(t, p.AddEntry(models.NewMessageEntry(models.ChangeLogInternal, "Update dependencies")))
	require.NoError(t, p.Save())

	reloaded, err := LoadFile(mfs, "/ext/vscode-whats-new/content.md")
	require.NoError(t, err)

	changeLog := reloaded.ProvideChangeLog()
	require.Len(t, changeLog, 6)
	require.Equal(t, models.NewVersionEntry("13.5.0", "March 2024"), changeLog[0])
	require.Equal(t, models.NewMessageEntry(models.ChangeLogInternal, "Update dependencies"), changeLog[1])

	// the rest of the file survives the round trip
	require.Equal(t, p.ProvideHeader("x"), reloaded.ProvideHeader("x"))
	require.Equal(t, p.ProvideSponsors(), reloaded.ProvideSponsors())
	require.Equal(t, p.ProvideSupportChannels(), reloaded.ProvideSupportChannels())
	require.Equal(t, p.ProvideSocialMedias(), reloaded.ProvideSocialMedias())
}

func TestFileProvider_AddRelease(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	p := NewFileProvider(mfs, "/ext/vscode-whats-new/content.md")

	// without a release the entry goes to the top
	require.NoError(t, p.AddEntry(models.NewMessageEntry(models.ChangeLogFixed, "Old fix")))

	p.AddRelease("2.0.0", "May 2024")
	require.NoError(t, p.AddEntry(models.NewIssueEntry(models.ChangeLogNew, models.IssueRef{Message: "Shiny", ID: 3, Kind: models.IssueKindIssue})))
	require.NoError(t, p.Save())
	require.True(t, mfs.Exists("/ext/vscode-whats-new/content.md"))

	reloaded, err := LoadFile(mfs, "/ext/vscode-whats-new/content.md")
	require.NoError(t, err)
	require.Equal(t, []models.ChangeLogEntry{
		models.NewVersionEntry("2.0.0", "May 2024"),
		models.NewIssueEntry(models.ChangeLogNew, models.IssueRef{Message: "Shiny", ID: 3, Kind: models.IssueKindIssue}),
		models.NewMessageEntry(models.ChangeLogFixed, "Old fix"),
	}, reloaded.ProvideChangeLog())
}

func TestFileProvider_AddEntryRejectsVersion(t *testing.T) {
	p := NewFileProvider(filesystem.NewMockFileSystem(), "/ext/content.md")
	require.Error(t, p.AddEntry(models.NewVersionEntry("1.0.0", "today")))
	require.Error(t, p.AddEntry(models.NewMessageEntry("ADDED", "x")))
}

func TestFileProvider_ProvideDoesNotExposeState(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ext/content.md", []byte(bookmarksContent))
	p, err := LoadFile(mfs, "/ext/content.md")
	require.NoError(t, err)

	changeLog := p.ProvideChangeLog()
	changeLog[0] = models.NewMessageEntry(models.ChangeLogNew, "mutated")

	require.Equal(t, models.VariantVersion, p.ProvideChangeLog()[0].Variant())
}

func TestStatic(t *testing.T) {
	s := &Static{
		Header:    models.Header{Message: "hello", Logo: models.Image{Width: 10, Height: 20}},
		ChangeLog: []models.ChangeLogEntry{models.NewMessageEntry(models.ChangeLogNew, "x")},
	}

	header := s.ProvideHeader("logo.png")
	require.Equal(t, "logo.png", header.Logo.Src)
	require.Equal(t, "", s.Header.Logo.Src)
	require.Len(t, s.ProvideChangeLog(), 1)
	require.NotNil(t, s.ProvideSponsors())
	require.NotNil(t, s.ProvideSocialMedias())
	require.NotNil(t, s.ProvideSupportChannels())
}
