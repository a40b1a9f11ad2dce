package add

import (
	"fmt"
	"strings"

	"github.com/alefragnani/vscode-whats-new/internal/models"
	"github.com/alefragnani/vscode-whats-new/internal/tui"
)

// RenderSuccess renders a summary after a successful flow run.
func RenderSuccess(result *Result) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render("✓ Changelog Entry Added"))
	b.WriteString("\n\n")
	if result.Release != nil {
		b.WriteString(fmt.Sprintf("%s %s %s\n", tui.Badge(models.ChangeLogVersion), result.Release.ReleaseNumber,
			tui.SubtleStyle.Render(result.Release.ReleaseDate)))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", tui.Badge(result.Entry.Kind), describe(result.Entry)))
	b.WriteString("\n")
	b.WriteString(tui.SubtleStyle.Render(fmt.Sprintf("Saved to %s", result.Path)))
	b.WriteString("\n")

	return b.String()
}

func describe(entry models.ChangeLogEntry) string {
	if entry.Variant() != models.VariantIssue {
		return entry.Message
	}

	ref := fmt.Sprintf("%s #%d", entry.Issue.Kind, entry.Issue.ID)
	if entry.Issue.Kudos != "" {
		ref = fmt.Sprintf("Thanks to %s - %s", entry.Issue.Kudos, ref)
	}
	return fmt.Sprintf("%s (%s)", entry.Issue.Message, ref)
}
