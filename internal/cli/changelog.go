package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/changelog"
)

// ChangelogCommand handles the changelog command
type ChangelogCommand struct {
	app *app
}

// NewChangelogCommand creates a new changelog command
func NewChangelogCommand(a *app) *cobra.Command {
	cmd := &ChangelogCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "changelog",
		Short: "Export the content file changelog as CHANGELOG.md",
		Long: `Formats the changelog of the content file as markdown, one section per
release, newest first.

Without --write the markdown is printed. A template at
vscode-whats-new/changelog.tmpl replaces the default format.`,
		Example: `  # Preview
  whatsnew changelog

  # Regenerate CHANGELOG.md, keeping its preamble
  whatsnew changelog --write`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolP("write", "w", false, "Write <root>/CHANGELOG.md instead of printing")

	return cobraCmd
}

// Run executes the changelog command
func (c *ChangelogCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.app.settings(cmd)
	if err != nil {
		return err
	}

	ext, err := c.app.loadExtension(s)
	if err != nil {
		return err
	}
	provider, err := c.app.loadContent(s)
	if err != nil {
		return err
	}

	cl := changelog.NewChangelog(c.app.fs)
	entries := provider.ProvideChangeLog()

	if write, _ := cmd.Flags().GetBool("write"); write {
		path, err := cl.Write(s.root, ext, entries)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	preview, err := cl.Format(s.root, ext, entries)
	if err != nil {
		return fmt.Errorf("failed to format changelog: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), preview)
	return nil
}
