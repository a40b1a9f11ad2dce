package page

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alefragnani/vscode-whats-new/internal/models"
	"github.com/alefragnani/vscode-whats-new/internal/versioning"
)

// ErrMissingRequiredField is returned when the bundle lacks content the page cannot do without.
var ErrMissingRequiredField = errors.New("missing required field")

// Placeholder tokens recognized in templates.
const (
	TokenPublisher            = "${publisher}"
	TokenExtensionDisplayName = "${extensionDisplayName}"
	TokenExtensionName        = "${extensionName}"
	TokenExtensionVersion     = "${extensionVersion}"
	TokenRepositoryURL        = "${repositoryUrl}"
	TokenRepositoryIssues     = "${repositoryIssues}"
	TokenRepositoryHomepage   = "${repositoryHomepage}"
	TokenCSSURL               = "${cssUrl}"
	TokenHeaderLogo           = "${headerLogo}"
	TokenHeaderWidth          = "${headerWidth}"
	TokenHeaderHeight         = "${headerHeight}"
	TokenHeaderMessage        = "${headerMessage}"
	TokenChangeLog            = "${changeLog}"
	TokenSponsors             = "${sponsors}"
	TokenSupportChannels      = "${supportChannels}"
	TokenSocialMedias         = "${socialMedias}"

	// Global tokens, usually repeated in every asset URL of the template
	TokenCSPSource = "#{cspSource}"
	TokenRoot      = "#{root}"
)

// Tokens lists every recognized token, in substitution order.
var Tokens = []string{
	TokenPublisher, TokenExtensionDisplayName, TokenExtensionName, TokenExtensionVersion,
	TokenRepositoryURL, TokenRepositoryIssues, TokenRepositoryHomepage, TokenCSSURL,
	TokenHeaderLogo, TokenHeaderWidth, TokenHeaderHeight, TokenHeaderMessage,
	TokenChangeLog, TokenSponsors, TokenSupportChannels, TokenSocialMedias,
	TokenCSPSource, TokenRoot,
}

// Bundle is the content of one page.
//
// Header and ChangeLog are required. Sponsors, SupportChannels and
// SocialMedias may be nil or empty, in which case their section disappears.
type Bundle struct {
	Extension models.Extension

	// CSSURL is the stylesheet URL, already rewritten for the display surface
	CSSURL string

	Header          *models.Header
	ChangeLog       []models.ChangeLogEntry
	Sponsors        []models.Sponsor
	SupportChannels []models.SupportChannel
	SocialMedias    []models.SocialMedia

	// CSPSource replaces every #{cspSource}
	CSPSource string

	// Root replaces every #{root}, the extension root as seen by the surface
	Root string
}

// renderState is the template text under construction. Steps receive it by
// value and return the next state.
type renderState struct {
	text string

	// repositoryURL is set by the repository step and read by the changelog step
	repositoryURL string
}

type step func(renderState, *Bundle) (renderState, error)

// Renderer turns a template and a Bundle into the final page.
type Renderer struct {
	steps []step
}

// NewRenderer creates a new Renderer.
//
// Scalar fields come first so the repository URL is known when changelog
// links are built. The global tokens are replaced last, after every fragment
// that may contain them has been inserted.
func NewRenderer() *Renderer {
	return &Renderer{
		steps: []step{
			substituteExtension,
			substituteCSS,
			substituteHeader,
			substituteChangeLog,
			substituteSponsors,
			substituteSupportChannels,
			substituteSocialMedias,
			substituteGlobals,
		},
	}
}

// Render fills template with bundle. It never modifies bundle.
func (r *Renderer) Render(template string, bundle *Bundle) (string, error) {
	if bundle == nil {
		return "", fmt.Errorf("%w: bundle", ErrMissingRequiredField)
	}

	st := renderState{text: template}
	for _, s := range r.steps {
		var err error
		if st, err = s(st, bundle); err != nil {
			return "", err
		}
	}
	return st.text, nil
}

func (st renderState) replace(token, value string) renderState {
	st.text = strings.ReplaceAll(st.text, token, value)
	return st
}

func substituteExtension(st renderState, b *Bundle) (renderState, error) {
	ext := b.Extension

	st = st.replace(TokenPublisher, ext.Publisher).
		replace(TokenExtensionDisplayName, ext.DisplayName).
		replace(TokenExtensionName, ext.Name)

	if strings.Contains(st.text, TokenExtensionVersion) {
		if ext.Version == "" {
			return st, fmt.Errorf("%w: extension version", ErrMissingRequiredField)
		}
		label, err := versioning.MajorMinor(ext.Version)
		if err != nil {
			return st, fmt.Errorf("failed to format extension version: %w", err)
		}
		st = st.replace(TokenExtensionVersion, label)
	}

	st = st.replace(TokenRepositoryURL, ext.RepositoryURL)
	st.repositoryURL = ext.RepositoryURL

	st = st.replace(TokenRepositoryIssues, ext.IssuesURL).
		replace(TokenRepositoryHomepage, ext.HomepageURL)
	return st, nil
}

func substituteCSS(st renderState, b *Bundle) (renderState, error) {
	return st.replace(TokenCSSURL, b.CSSURL), nil
}

func substituteHeader(st renderState, b *Bundle) (renderState, error) {
	if b.Header == nil {
		return st, fmt.Errorf("%w: header", ErrMissingRequiredField)
	}
	if b.Header.Logo.Src == "" {
		return st, fmt.Errorf("%w: header logo source", ErrMissingRequiredField)
	}

	return st.replace(TokenHeaderLogo, b.Header.Logo.Src).
		replace(TokenHeaderWidth, strconv.Itoa(b.Header.Logo.Width)).
		replace(TokenHeaderHeight, strconv.Itoa(b.Header.Logo.Height)).
		replace(TokenHeaderMessage, b.Header.Message), nil
}

func substituteChangeLog(st renderState, b *Bundle) (renderState, error) {
	if b.ChangeLog == nil {
		return st, fmt.Errorf("%w: changelog", ErrMissingRequiredField)
	}

	html, err := renderChangeLog(b.ChangeLog, st.repositoryURL)
	if err != nil {
		return st, err
	}
	return st.replace(TokenChangeLog, html), nil
}

func substituteSponsors(st renderState, b *Bundle) (renderState, error) {
	html, err := renderSponsors(b.Sponsors)
	if err != nil {
		return st, err
	}
	return st.replace(TokenSponsors, html), nil
}

func substituteSupportChannels(st renderState, b *Bundle) (renderState, error) {
	html, err := renderSupportChannels(b.SupportChannels)
	if err != nil {
		return st, err
	}
	return st.replace(TokenSupportChannels, html), nil
}

func substituteSocialMedias(st renderState, b *Bundle) (renderState, error) {
	html, err := renderSocialMedias(b.SocialMedias)
	if err != nil {
		return st, err
	}
	return st.replace(TokenSocialMedias, html), nil
}

func substituteGlobals(st renderState, b *Bundle) (renderState, error) {
	return st.replace(TokenCSPSource, b.CSPSource).
		replace(TokenRoot, b.Root), nil
}
