package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/surface"
	"github.com/alefragnani/vscode-whats-new/internal/tui"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app *app
}

// NewShowCommand creates a new show command
func NewShowCommand(a *app) *cobra.Command {
	cmd := &ShowCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "show",
		Short: "Run the activation flow: show the page if the upgrade deserves it",
		Long: `Runs what an extension does on activation: compare the installed version
with the last one seen, record it, and write the page when a minor or major
upgrade happened outside a restricted environment.`,
		Example: `  whatsnew show --output .whatsnew/whats-new.html`,
		RunE:    cmd.Run,
	}

	cobraCmd.Flags().StringP("output", "o", ".whatsnew/whats-new.html", "Where the page is written, relative to the extension root")

	return cobraCmd
}

// Run executes the show command
func (c *ShowCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := c.app.settings(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if !filepath.IsAbs(output) {
		output = filepath.Join(s.root, output)
	}

	store, release, err := c.app.openStore(ctx, s)
	if err != nil {
		return err
	}
	defer release()

	surf := surface.NewFileSurface(c.app.fs, s.root, output)
	m, err := c.app.newManager(cmd, s, store, surf)
	if err != nil {
		return err
	}

	decision, err := m.ShowPageInActivation(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case decision.Show:
		_, _ = fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("✓ %s", m.Title())))
		_, _ = fmt.Fprintf(out, "Wrote %s\n", surf.Output())
	case decision.Suppressed:
		_, _ = fmt.Fprintln(out, tui.WarningStyle.Render(fmt.Sprintf("⚠ page suppressed (%s)", c.app.probe(s).Describe())))
	default:
		_, _ = fmt.Fprintln(out, tui.SubtleStyle.Render("nothing to show"))
	}
	return nil
}
