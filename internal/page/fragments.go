package page

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/alefragnani/vscode-whats-new/internal/models"
)

// Fragments are concatenated without separators so the output only depends on the input.
const fragmentTemplates = `
{{- define "changeLog" -}}
{{- range . -}}
{{- if .IsVersion -}}
<li class="changelog__version__borders{{ if .BorderTop }} changelog__version__borders__top{{ end }}"><span class="changelog__badge changelog__badge--version">{{ .ReleaseNumber }}</span> <span class="uppercase bold">{{ .ReleaseDate }}</span></li>
{{- else -}}
<li><span class="changelog__badge changelog__badge--{{ .Badge }}">{{ .Kind }}</span> {{ trim .Message }}
{{- with .Link }} ({{ with .Kudos }}Thanks to {{ . }} - {{ end }}<a title="Open {{ .Label }}" href="{{ .URL }}">{{ .Label }}</a>){{ end -}}
</li>
{{- end -}}
{{- end -}}
{{- end -}}

{{- define "sponsorImages" -}}
<a title="{{ .Title }}" href="{{ .Link }}"><img class="dark" src="{{ .Image.Light }}" width="{{ .Width }}%"/><img class="light" src="{{ .Image.Dark }}" width="{{ .Width }}%"/></a>
{{- end -}}

{{- define "sponsors" -}}
<p><h2>Sponsors</h2>
{{- range . -}}
{{- if trim .Message -}}
{{ template "sponsorImages" . }} {{ trim .Message }} {{ trim .Extra }}<br><br>
{{- else -}}
<div align="center">{{ template "sponsorImages" . }}</div><br>
{{- end -}}
{{- end -}}
</p>
{{- end -}}

{{- define "supportChannels" -}}
<div class="button-group button-group--support-alefragnani">
{{- range . -}}
<a class="button button--flat-primary" title="{{ .Title }}" href="{{ .Link }}" target="_blank">{{ trim .Message }}</a>
{{- end -}}
</div>
{{- end -}}

{{- define "socialMedias" -}}
{{- range . -}}
<li><a title="{{ .Title }}" href="{{ .Link }}">{{ .Title }}</a></li>
{{- end -}}
{{- end -}}
`

var fragments = template.Must(template.New("fragments").Funcs(sprig.TxtFuncMap()).Parse(fragmentTemplates))

// changeLogItem is the view of one changelog entry
type changeLogItem struct {
	IsVersion bool
	BorderTop bool

	ReleaseNumber string
	ReleaseDate   string

	Kind    string
	Badge   string
	Message string
	Link    *issueLink
}

type issueLink struct {
	Label string
	URL   string
	Kudos string
}

// badgeFor maps a changelog kind to its badge CSS modifier
func badgeFor(kind models.ChangeLogKind) string {
	switch kind {
	case models.ChangeLogNew:
		return "added"
	case models.ChangeLogChanged:
		return "changed"
	case models.ChangeLogFixed:
		return "fixed"
	case models.ChangeLogInternal:
		return "internal"
	default:
		return "internal"
	}
}

func buildChangeLogItems(entries []models.ChangeLogEntry, repositoryURL string) []changeLogItem {
	items := make([]changeLogItem, 0, len(entries))
	seenVersion := false

	for _, entry := range entries {
		if entry.Variant() == models.VariantVersion && entry.Version != nil {
			items = append(items, changeLogItem{
				IsVersion:     true,
				BorderTop:     seenVersion,
				ReleaseNumber: entry.Version.ReleaseNumber,
				ReleaseDate:   entry.Version.ReleaseDate,
			})
			seenVersion = true
			continue
		}

		item := changeLogItem{
			Kind:    entry.Kind.String(),
			Badge:   badgeFor(entry.Kind),
			Message: entry.Message,
		}

		if entry.Variant() == models.VariantIssue && entry.Issue != nil {
			item.Message = entry.Issue.Message
			item.Link = buildIssueLink(entry.Issue, repositoryURL)
		}

		items = append(items, item)
	}

	return items
}

func buildIssueLink(issue *models.IssueRef, repositoryURL string) *issueLink {
	id := strconv.Itoa(issue.ID)

	if issue.Kind == models.IssueKindPR {
		return &issueLink{
			Label: "PR #" + id,
			URL:   repositoryURL + "/pull/" + id,
			Kudos: issue.Kudos,
		}
	}

	return &issueLink{
		Label: "Issue #" + id,
		URL:   repositoryURL + "/issues/" + id,
	}
}

func executeFragment(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderChangeLog(entries []models.ChangeLogEntry, repositoryURL string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	return executeFragment("changeLog", buildChangeLogItems(entries, repositoryURL))
}

func renderSponsors(sponsors []models.Sponsor) (string, error) {
	if len(sponsors) == 0 {
		return "", nil
	}
	return executeFragment("sponsors", sponsors)
}

func renderSupportChannels(channels []models.SupportChannel) (string, error) {
	if len(channels) == 0 {
		return "", nil
	}
	return executeFragment("supportChannels", channels)
}

func renderSocialMedias(socialMedias []models.SocialMedia) (string, error) {
	if len(socialMedias) == 0 {
		return "", nil
	}
	return executeFragment("socialMedias", socialMedias)
}
