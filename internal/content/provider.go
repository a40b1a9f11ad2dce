// Package content supplies the text of the "what's new" page: header,
// changelog, sponsors, support channels and social media links.
package content

import "github.com/alefragnani/vscode-whats-new/internal/models"

// Provider supplies the content every page needs.
type Provider interface {
	// ProvideHeader returns the header, using logoURL as the logo source
	ProvideHeader(logoURL string) models.Header

	// ProvideChangeLog returns the changelog entries, in display order
	ProvideChangeLog() []models.ChangeLogEntry

	ProvideSupportChannels() []models.SupportChannel
}

// SponsorProvider is implemented by providers that acknowledge sponsors.
type SponsorProvider interface {
	ProvideSponsors() []models.Sponsor
}

// SocialMediaProvider is implemented by providers that link to social profiles.
type SocialMediaProvider interface {
	ProvideSocialMedias() []models.SocialMedia
}

var (
	_ Provider            = (*Static)(nil)
	_ SponsorProvider     = (*Static)(nil)
	_ SocialMediaProvider = (*Static)(nil)
)

// Static serves content held in memory.
type Static struct {
	Header          models.Header
	ChangeLog       []models.ChangeLogEntry
	Sponsors        []models.Sponsor
	SupportChannels []models.SupportChannel
	SocialMedias    []models.SocialMedia
}

func (s *Static) ProvideHeader(logoURL string) models.Header {
	header := s.Header
	header.Logo.Src = logoURL
	return header
}

func (s *Static) ProvideChangeLog() []models.ChangeLogEntry {
	return cloneOrEmpty(s.ChangeLog)
}

func (s *Static) ProvideSupportChannels() []models.SupportChannel {
	return cloneOrEmpty(s.SupportChannels)
}

func (s *Static) ProvideSponsors() []models.Sponsor {
	return cloneOrEmpty(s.Sponsors)
}

func (s *Static) ProvideSocialMedias() []models.SocialMedia {
	return cloneOrEmpty(s.SocialMedias)
}

// cloneOrEmpty copies items so callers cannot alter the provider's state.
// The result is never nil.
func cloneOrEmpty[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
