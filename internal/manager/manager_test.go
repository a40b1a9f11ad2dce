package manager

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alefragnani/vscode-whats-new/internal/content"
	"github.com/alefragnani/vscode-whats-new/internal/environment"
	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/models"
	"github.com/alefragnani/vscode-whats-new/internal/page"
	"github.com/alefragnani/vscode-whats-new/internal/state"
	"github.com/alefragnani/vscode-whats-new/internal/surface"
	"github.com/alefragnani/vscode-whats-new/internal/ui"
	"github.com/alefragnani/vscode-whats-new/internal/versioning"
)

// recordingSurface keeps every shown page
type recordingSurface struct {
	pages []surface.Page
	err   error
}

func (r *recordingSurface) Show(_ context.Context, p surface.Page) error {
	if r.err != nil {
		return r.err
	}
	r.pages = append(r.pages, p)
	return nil
}

func (r *recordingSurface) AssetURI(path string) string {
	if path == "" {
		return "vscode-resource://ext"
	}
	return "vscode-resource://ext/" + path
}

func (r *recordingSurface) CSPSource() string {
	return "vscode-resource:"
}

// contentOnly hides the optional provider interfaces of the wrapped Static
type contentOnly struct {
	s *content.Static
}

func (c contentOnly) ProvideHeader(logoURL string) models.Header { return c.s.ProvideHeader(logoURL) }
func (c contentOnly) ProvideChangeLog() []models.ChangeLogEntry { return c.s.ProvideChangeLog() }
func (c contentOnly) ProvideSupportChannels() []models.SupportChannel {
	return c.s.ProvideSupportChannels()
}

func bookmarks(version string) *models.Extension {
	return &models.Extension{
		Publisher:     "alefragnani",
		Name:          "Bookmarks",
		DisplayName:   "Bookmarks",
		Version:       version,
		RepositoryURL: "https://github.com/alefragnani/vscode-bookmarks",
		IssuesURL:     "https://github.com/alefragnani/vscode-bookmarks/issues",
		HomepageURL:   "https://github.com/alefragnani/vscode-bookmarks#readme",
	}
}

func bookmarksContent() *content.Static {
	return &content.Static{
		Header: models.Header{
			Logo:    models.Image{Width: 146, Height: 146},
			Message: "Bookmarks helps you to navigate in your code",
		},
		ChangeLog: []models.ChangeLogEntry{
			models.NewVersionEntry("13.5.0", "March 2024"),
			models.NewIssueEntry(models.ChangeLogNew, models.IssueRef{Message: "Adds walkthrough", ID: 42, Kind: models.IssueKindPR, Kudos: "@octocat"}),
		},
		Sponsors: []models.Sponsor{{
			Title: "Codestream",
			Link:  "https://codestream.com",
			Image: models.ThemedImage{Light: "light.png", Dark: "dark.png"},
			Width: 35,
		}},
		SupportChannels: []models.SupportChannel{{Title: "Sponsor", Link: "https://github.com/sponsors/alefragnani", Message: "Become a Sponsor"}},
		SocialMedias:    []models.SocialMedia{{Title: "Follow me on Twitter", Link: "https://twitter.com/alefragnani"}},
	}
}

func newTestManager(t *testing.T, version string, store state.Store, restricted bool, opts ...Option) (*Manager, *recordingSurface) {
	t.Helper()
	surf := &recordingSurface{}
	opts = append([]Option{WithProbe(environment.Static(restricted))}, opts...)
	m, err := New(bookmarks(version), bookmarksContent(), store, surf, opts...)
	require.NoError(t, err)
	return m, surf
}

func TestManager_ShowPageInActivation(t *testing.T) {
	tests := []struct {
		name       string
		previous   string
		current    string
		restricted bool
		wantShow   bool
		wantStored string
	}{
		{name: "first activation", current: "13.5.0", wantStored: "13.5.0"},
		{name: "patch upgrade", previous: "13.5.0", current: "13.5.1", wantStored: "13.5.0"},
		{name: "minor upgrade", previous: "13.4.2", current: "13.5.0", wantShow: true, wantStored: "13.5.0"},
		{name: "major upgrade", previous: "12.1.0", current: "13.0.0", wantShow: true, wantStored: "13.0.0"},
		{name: "restricted minor upgrade", previous: "13.4.2", current: "13.5.0", restricted: true, wantStored: "13.5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := state.NewMemoryStore()
			if tt.previous != "" {
				require.NoError(t, store.Set(ctx, "Bookmarks.version", tt.previous))
			}

			m, surf := newTestManager(t, tt.current, store, tt.restricted)
			decision, err := m.ShowPageInActivation(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.wantShow, decision.Show)

			if tt.wantShow {
				require.Len(t, surf.pages, 1)
				require.Equal(t, "What's New in Bookmarks", surf.pages[0].Title)
			} else {
				require.Empty(t, surf.pages)
			}

			stored, found, err := store.Get(ctx, m.VersionKey())
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, tt.wantStored, stored)
		})
	}
}

func TestManager_ShowPage(t *testing.T) {
	m, surf := newTestManager(t, "13.5.0", state.NewMemoryStore(), false)
	require.NoError(t, m.ShowPage(context.Background()))
	require.Len(t, surf.pages, 1)

	html := surf.pages[0].HTML
	require.Contains(t, html, "<title>What's New in Bookmarks</title>")
	require.Contains(t, html, "What's New in Bookmarks 13.5")
	require.Contains(t, html, `href="vscode-resource://ext/vscode-whats-new/ui/main.css"`)
	require.Contains(t, html, `src="vscode-resource://ext/images/vscode-bookmarks-logo-readme.png"`)
	require.Contains(t, html, `href="https://github.com/alefragnani/vscode-bookmarks/pull/42"`)
	require.Contains(t, html, "Thanks to @octocat")
	require.Contains(t, html, "<h2>Sponsors</h2>")
	require.Contains(t, html, "Follow me on Twitter")
	require.Contains(t, html, "img-src vscode-resource: https: data:")
	require.Contains(t, html, "itemName=alefragnani.Bookmarks")

	for _, token := range page.Tokens {
		require.NotContains(t, html, token)
	}
}

func TestManager_OptionalProviders(t *testing.T) {
	ctx := context.Background()
	surf := &recordingSurface{}
	m, err := New(bookmarks("13.5.0"), contentOnly{bookmarksContent()}, state.NewMemoryStore(), surf,
		WithProbe(environment.Static(false)))
	require.NoError(t, err)

	bundle := m.Bundle()
	require.Nil(t, bundle.Sponsors)
	require.Nil(t, bundle.SocialMedias)

	require.NoError(t, m.ShowPage(ctx))
	require.NotContains(t, surf.pages[0].HTML, "<h2>Sponsors</h2>")

	// explicit providers win over the content provider
	m, err = New(bookmarks("13.5.0"), bookmarksContent(), state.NewMemoryStore(), surf,
		WithSponsorProvider(&content.Static{}),
		WithSocialMediaProvider(&content.Static{SocialMedias: []models.SocialMedia{{Title: "Mastodon", Link: "https://mastodon.social/@me"}}}),
	)
	require.NoError(t, err)
	bundle = m.Bundle()
	require.Empty(t, bundle.Sponsors)
	require.Equal(t, "Mastodon", bundle.SocialMedias[0].Title)
}

func TestManager_TemplateReadErrorAfterRecording(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "Bookmarks.version", "1.0.0"))

	mfs := filesystem.NewMockFileSystem()
	m, surf := newTestManager(t, "2.0.0", store, false,
		WithTemplateSource(NewFileTemplateSource(mfs, "/ext")))

	decision, err := m.ShowPageInActivation(ctx)
	require.ErrorIs(t, err, ErrTemplateRead)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.True(t, decision.Show)
	require.Empty(t, surf.pages)

	stored, _, err := store.Get(ctx, "Bookmarks.version")
	require.NoError(t, err)
	require.Equal(t, "2.0.0", stored)
}

func TestManager_InvalidVersion(t *testing.T) {
	m, _ := newTestManager(t, "latest", state.NewMemoryStore(), false)
	_, err := m.ShowPageInActivation(context.Background())
	require.ErrorIs(t, err, versioning.ErrInvalidVersion)
}

func TestManager_SurfaceErrorPropagates(t *testing.T) {
	boom := errors.New("webview disposed")
	m, err := New(bookmarks("1.0.0"), bookmarksContent(), state.NewMemoryStore(), &recordingSurface{err: boom})
	require.NoError(t, err)

	require.ErrorIs(t, m.ShowPage(context.Background()), boom)
}

func TestManager_CustomPaths(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ext/ui/page.html", []byte(`<link href="${cssUrl}"><img src="${headerLogo}">${changeLog}`))

	m, surf := newTestManager(t, "1.0.0", state.NewMemoryStore(), false,
		WithTemplateSource(NewFileTemplateSource(mfs, "/ext")),
		WithTemplatePath("ui/page.html"),
		WithStylesheetPath("ui/page.css"),
		WithLogoPath("media/logo.svg"),
	)
	require.NoError(t, m.ShowPage(context.Background()))
	require.Contains(t, surf.pages[0].HTML, `<link href="vscode-resource://ext/ui/page.css"><img src="vscode-resource://ext/media/logo.svg">`)
}

func TestNew_Validation(t *testing.T) {
	store := state.NewMemoryStore()
	surf := &recordingSurface{}
	provider := bookmarksContent()

	_, err := New(nil, provider, store, surf)
	require.Error(t, err)

	_, err = New(&models.Extension{Name: "bookmarks"}, provider, store, surf)
	require.Error(t, err)

	_, err = New(bookmarks("1.0.0"), nil, store, surf)
	require.Error(t, err)

	_, err = New(bookmarks("1.0.0"), provider, nil, surf)
	require.Error(t, err)

	_, err = New(bookmarks("1.0.0"), provider, store, nil)
	require.Error(t, err)
}

func TestTemplateSources(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ext/vscode-whats-new/ui/whats-new.html", []byte("custom"))

	text, err := EmbeddedTemplateSource{}.ReadTemplate(ui.TemplatePath)
	require.NoError(t, err)
	require.Equal(t, ui.Template(), text)

	_, err = EmbeddedTemplateSource{}.ReadTemplate("missing.html")
	require.ErrorIs(t, err, ErrTemplateRead)

	layered := LayeredTemplateSource{NewFileTemplateSource(mfs, "/ext"), EmbeddedTemplateSource{}}

	text, err = layered.ReadTemplate(ui.TemplatePath)
	require.NoError(t, err)
	require.Equal(t, "custom", text)

	text, err = layered.ReadTemplate(ui.StylesheetPath)
	require.NoError(t, err)
	require.Equal(t, ui.Stylesheet(), text)

	_, err = layered.ReadTemplate("nope.html")
	require.ErrorIs(t, err, ErrTemplateRead)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = LayeredTemplateSource{}.ReadTemplate("nope.html")
	require.ErrorIs(t, err, ErrTemplateRead)
}
