// Package environment detects hosts where the page must not be opened.
package environment

import (
	"os"
	"strings"
)

// Probe reports whether the current environment restricts showing the page.
type Probe interface {
	IsRestricted() bool
}

// Static is a Probe with a fixed answer
type Static bool

func (s Static) IsRestricted() bool {
	return bool(s)
}

// OSProbe inspects environment variables. Codespaces and Gitpod workspaces are
// ephemeral, so the page would reappear on every new workspace.
type OSProbe struct {
	lookup func(string) (string, bool)

	// Suppress forces the restricted answer
	Suppress bool
}

// NewOSProbe creates a new OSProbe reading the process environment
func NewOSProbe(suppress bool) *OSProbe {
	return &OSProbe{lookup: os.LookupEnv, Suppress: suppress}
}

// NewOSProbeWithLookup creates a new OSProbe over a custom variable lookup
func NewOSProbeWithLookup(lookup func(string) (string, bool), suppress bool) *OSProbe {
	return &OSProbe{lookup: lookup, Suppress: suppress}
}

func (p *OSProbe) IsRestricted() bool {
	return p.Suppress || p.IsCodespaces() || p.IsGitpod()
}

// IsCodespaces reports whether the process runs in a GitHub Codespace
func (p *OSProbe) IsCodespaces() bool {
	value, _ := p.lookup("CODESPACES")
	return strings.EqualFold(value, "true")
}

// IsGitpod reports whether the process runs in a Gitpod workspace
func (p *OSProbe) IsGitpod() bool {
	value, ok := p.lookup("GITPOD_WORKSPACE_ID")
	return ok && value != ""
}

// Describe names the restriction in effect, or "" when there is none
func (p *OSProbe) Describe() string {
	switch {
	case p.Suppress:
		return "suppressed"
	case p.IsCodespaces():
		return "codespaces"
	case p.IsGitpod():
		return "gitpod"
	default:
		return ""
	}
}
