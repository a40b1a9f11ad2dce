// Package manager runs the "what's new" flow of one extension: decide on
// activation whether the page is due, then build and show it.
package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alefragnani/vscode-whats-new/internal/content"
	"github.com/alefragnani/vscode-whats-new/internal/environment"
	"github.com/alefragnani/vscode-whats-new/internal/logger"
	"github.com/alefragnani/vscode-whats-new/internal/models"
	"github.com/alefragnani/vscode-whats-new/internal/page"
	"github.com/alefragnani/vscode-whats-new/internal/state"
	"github.com/alefragnani/vscode-whats-new/internal/surface"
	"github.com/alefragnani/vscode-whats-new/internal/ui"
	"github.com/alefragnani/vscode-whats-new/internal/versioning"
)

// Manager shows the "what's new" page of one extension
type Manager struct {
	ext *models.Extension

	content  content.Provider
	sponsors content.SponsorProvider
	socials  content.SocialMediaProvider

	store     state.Store
	probe     environment.Probe
	templates TemplateSource
	surface   surface.Surface
	log       *logger.Logger

	renderer *page.Renderer
	gate     *versioning.Gate

	templatePath   string
	stylesheetPath string
	logoPath       string
}

// Option configures a Manager
type Option func(*Manager)

// WithSponsorProvider sets the sponsors source. Without it, a content
// provider that also lists sponsors is used.
func WithSponsorProvider(p content.SponsorProvider) Option {
	return func(m *Manager) { m.sponsors = p }
}

// WithSocialMediaProvider sets the social media source. Without it, a content
// provider that also lists social medias is used.
func WithSocialMediaProvider(p content.SocialMediaProvider) Option {
	return func(m *Manager) { m.socials = p }
}

// WithProbe sets the environment probe. Defaults to the process environment.
func WithProbe(p environment.Probe) Option {
	return func(m *Manager) { m.probe = p }
}

// WithTemplateSource sets where templates are read from. Defaults to the built-in template.
func WithTemplateSource(s TemplateSource) Option {
	return func(m *Manager) { m.templates = s }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithTemplatePath overrides the template location, relative to the extension root
func WithTemplatePath(path string) Option {
	return func(m *Manager) { m.templatePath = path }
}

// WithStylesheetPath overrides the stylesheet location, relative to the extension root
func WithStylesheetPath(path string) Option {
	return func(m *Manager) { m.stylesheetPath = path }
}

// WithLogoPath overrides the header logo location, relative to the extension root
func WithLogoPath(path string) Option {
	return func(m *Manager) { m.logoPath = path }
}

// New creates a Manager for ext, remembering versions in store and showing
// pages on surf.
func New(ext *models.Extension, provider content.Provider, store state.Store, surf surface.Surface, opts ...Option) (*Manager, error) {
	if ext == nil {
		return nil, errors.New("extension is required")
	}
	if ext.Publisher == "" || ext.Name == "" {
		return nil, fmt.Errorf("extension publisher and name are required, got %q", ext.ID())
	}
	if provider == nil {
		return nil, errors.New("content provider is required")
	}
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if surf == nil {
		return nil, errors.New("display surface is required")
	}

	m := &Manager{
		ext:            ext,
		content:        provider,
		store:          store,
		surface:        surf,
		renderer:       page.NewRenderer(),
		gate:           versioning.NewGate(store),
		templatePath:   ui.TemplatePath,
		stylesheetPath: ui.StylesheetPath,
		logoPath:       DefaultLogoPath(ext.Name),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sponsors == nil {
		m.sponsors, _ = provider.(content.SponsorProvider)
	}
	if m.socials == nil {
		m.socials, _ = provider.(content.SocialMediaProvider)
	}
	if m.probe == nil {
		m.probe = environment.NewOSProbe(false)
	}
	if m.templates == nil {
		m.templates = EmbeddedTemplateSource{}
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	m.log = m.log.With("extension", ext.ID())

	return m, nil
}

// DefaultLogoPath is where an extension keeps its README logo
func DefaultLogoPath(extensionName string) string {
	return "images/vscode-" + strings.ToLower(extensionName) + "-logo-readme.png"
}

// VersionKey is the store key holding the last seen version
func (m *Manager) VersionKey() string {
	return versioning.VersionKey(m.ext.Name)
}

// Title is the title of the page
func (m *Manager) Title() string {
	return fmt.Sprintf("What's New in %s", m.ext.DisplayName)
}

// ShowPageInActivation compares the installed version with the last seen one
// and shows the page after a minor or major upgrade. The new version is
// recorded before the page is built, so a page that fails to render is not
// retried on the next activation.
func (m *Manager) ShowPageInActivation(ctx context.Context) (versioning.Decision, error) {
	decision, err := m.gate.Evaluate(ctx, m.VersionKey(), m.ext.Version, m.probe.IsRestricted())
	if err != nil {
		return decision, err
	}

	switch {
	case decision.FirstRun:
		m.log.Infof("first activation, recorded version %s", decision.RecordedVersion)
	case decision.Suppressed:
		m.log.Infof("%s upgrade to %s, page suppressed in restricted environment", decision.Diff, m.ext.Version)
	case !decision.Show:
		m.log.Debugf("%s change, page not shown", decision.Diff)
	}

	if !decision.Show {
		return decision, nil
	}

	m.log.Infof("%s upgrade to %s, showing page", decision.Diff, m.ext.Version)
	return decision, m.ShowPage(ctx)
}

// ShowPage builds the page and shows it, regardless of versions
func (m *Manager) ShowPage(ctx context.Context) error {
	html, err := m.Render()
	if err != nil {
		return err
	}

	if err := m.surface.Show(ctx, surface.Page{Title: m.Title(), HTML: html}); err != nil {
		return fmt.Errorf("failed to show page: %w", err)
	}
	return nil
}

// Render builds the page HTML
func (m *Manager) Render() (string, error) {
	template, err := m.templates.ReadTemplate(m.templatePath)
	if err != nil {
		return "", err
	}

	html, err := m.renderer.Render(template, m.Bundle())
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return html, nil
}

// Bundle collects the page content, with asset paths rewritten for the surface
func (m *Manager) Bundle() *page.Bundle {
	header := m.content.ProvideHeader(m.surface.AssetURI(m.logoPath))

	bundle := &page.Bundle{
		Extension:       *m.ext,
		CSSURL:          m.surface.AssetURI(m.stylesheetPath),
		Header:          &header,
		ChangeLog:       m.content.ProvideChangeLog(),
		SupportChannels: m.content.ProvideSupportChannels(),
		CSPSource:       m.surface.CSPSource(),
		Root:            m.surface.AssetURI(""),
	}
	if m.sponsors != nil {
		bundle.Sponsors = m.sponsors.ProvideSponsors()
	}
	if m.socials != nil {
		bundle.SocialMedias = m.socials.ProvideSocialMedias()
	}
	return bundle
}
