package models

// Extension holds the metadata of the extension whose page is rendered.
type Extension struct {
	// Publisher is the marketplace publisher identifier
	Publisher string `json:"publisher"`

	// Name is the extension identifier (unique for the publisher)
	Name string `json:"name"`

	// DisplayName is the human readable name
	DisplayName string `json:"displayName"`

	// Version is the installed semantic version (e.g., 13.4.1)
	Version string `json:"version"`

	// RepositoryURL is the repository web URL, without a trailing ".git"
	RepositoryURL string `json:"repositoryUrl"`

	// IssuesURL is the bug tracker URL
	IssuesURL string `json:"issuesUrl"`

	// HomepageURL is the project homepage
	HomepageURL string `json:"homepageUrl"`
}

// ID returns the fully qualified identifier, e.g. "alefragnani.bookmarks".
func (e *Extension) ID() string {
	return e.Publisher + "." + e.Name
}
