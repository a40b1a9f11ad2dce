package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alefragnani/vscode-whats-new/internal/models"
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#007ACC")).
			MarginBottom(1)

	// Header styling for command output sections
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#007ACC")).
			Padding(0, 1)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Warning styling, used when a page is suppressed
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BF8700")).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// Description styling
	DescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// badgeColors mirror the changelog badge colors of the page stylesheet
	badgeColors = map[models.ChangeLogKind]lipgloss.Color{
		models.ChangeLogNew:      lipgloss.Color("#2DA44E"),
		models.ChangeLogChanged:  lipgloss.Color("#0969DA"),
		models.ChangeLogFixed:    lipgloss.Color("#BF8700"),
		models.ChangeLogInternal: lipgloss.Color("#8250DF"),
		models.ChangeLogVersion:  lipgloss.Color("#555555"),
	}
)

// Badge renders a changelog kind the way the page shows it
func Badge(kind models.ChangeLogKind) string {
	color, ok := badgeColors[kind]
	if !ok {
		color = badgeColors[models.ChangeLogInternal]
	}
	return badgeStyle.Background(color).Render(kind.String())
}

// NewHuhTheme returns the form theme used by interactive commands
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeBase()

	accent := lipgloss.Color("#007ACC")
	theme.Focused.Title = theme.Focused.Title.Foreground(accent).Bold(true)
	theme.Focused.Base = theme.Focused.Base.BorderForeground(accent)
	theme.Focused.SelectSelector = theme.Focused.SelectSelector.Foreground(accent)
	theme.Focused.SelectedOption = theme.Focused.SelectedOption.Foreground(accent)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(accent).Foreground(lipgloss.Color("#FFFFFF"))
	theme.Focused.ErrorMessage = ErrorStyle
	theme.Focused.ErrorIndicator = ErrorStyle
	theme.Focused.Description = DescStyle

	theme.Blurred = theme.Focused
	theme.Blurred.Base = theme.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	return theme
}
