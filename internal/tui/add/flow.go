package add

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"

	"github.com/alefragnani/vscode-whats-new/internal/content"
	"github.com/alefragnani/vscode-whats-new/internal/models"
	"github.com/alefragnani/vscode-whats-new/internal/tui"
)

// Flow asks for a changelog entry using huh forms and adds it to the content file.
type Flow struct {
	provider *content.FileProvider
	theme    *huh.Theme
}

// Result captures the successful output of the flow.
type Result struct {
	Entry   models.ChangeLogEntry
	Release *models.ReleaseInfo
	Path    string
}

// NewFlow constructs a Flow writing to provider
func NewFlow(provider *content.FileProvider) *Flow {
	return &Flow{
		provider: provider,
		theme:    tui.NewHuhTheme(),
	}
}

// Run asks the questions and saves the entry; returns nil result on user abort.
func (f *Flow) Run() (*Result, error) {
	answers, err := f.ask()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	return Apply(f.provider, answers)
}

// Apply validates answers, adds the entry to provider and saves it
func Apply(provider *content.FileProvider, answers Answers) (*Result, error) {
	entry, err := answers.Entry()
	if err != nil {
		return nil, err
	}

	result := &Result{Entry: entry, Path: provider.Path()}
	if release := strings.TrimSpace(answers.Release); release != "" {
		provider.AddRelease(release, strings.TrimSpace(answers.ReleaseDate))
		result.Release = &models.ReleaseInfo{ReleaseNumber: release, ReleaseDate: strings.TrimSpace(answers.ReleaseDate)}
	}

	if err := provider.AddEntry(entry); err != nil {
		return nil, err
	}
	if err := provider.Save(); err != nil {
		return nil, err
	}
	return result, nil
}

func (f *Flow) ask() (Answers, error) {
	answers := Answers{Reference: RefNone}

	kinds := []huh.Option[string]{
		huh.NewOption("NEW: a new feature", string(models.ChangeLogNew)),
		huh.NewOption("CHANGED: an improvement to an existing feature", string(models.ChangeLogChanged)),
		huh.NewOption("FIXED: a bug fix", string(models.ChangeLogFixed)),
		huh.NewOption("INTERNAL: maintenance, invisible to users", string(models.ChangeLogInternal)),
	}
	references := []huh.Option[string]{
		huh.NewOption("No reference", RefNone),
		huh.NewOption("Issue", RefIssue),
		huh.NewOption("Pull request", RefPR),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(kinds...).
				Value(&answers.Kind),
		).
			Title("Change Kind").
			Description("Picks the badge shown next to the entry."),
		huh.NewGroup(
			huh.NewText().
				Lines(4).
				Value(&answers.Message).
				Placeholder("Adds walkthrough for new users").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("message cannot be empty")
					}
					return nil
				}),
		).
			Title("Changelog Entry").
			Description("Describe your change. This will appear on the what's new page."),
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(references...).
				Value(&answers.Reference),
		).
			Title("Reference").
			Description("Link the entry to an issue or pull request."),
		huh.NewGroup(
			huh.NewInput().
				Title("Number").
				Value(&answers.IssueID).
				Validate(func(v string) error {
					_, err := ParseIssueID(v)
					return err
				}),
			huh.NewInput().
				Title("Kudos").
				Description("Who to thank for the pull request, e.g. @octocat").
				Value(&answers.Kudos),
		).
			WithHideFunc(func() bool { return answers.Reference == RefNone }),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return Answers{}, err
	}

	if answers.Reference != RefPR {
		answers.Kudos = ""
	}
	return answers, nil
}
