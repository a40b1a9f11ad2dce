package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/tui"
	"github.com/alefragnani/vscode-whats-new/internal/versioning"
)

// CheckCommand handles the check command
type CheckCommand struct {
	app *app
}

// NewCheckCommand creates a new check command
func NewCheckCommand(a *app) *cobra.Command {
	cmd := &CheckCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "check",
		Short: "Decide whether the page is due, without rendering it",
		Long: `Compares the installed version with the last version seen and reports
whether the "what's new" page would be shown.

The version is recorded exactly as an activation would, unless --dry-run is given.`,
		Example: `  # Check the extension in the current directory
  whatsnew check

  # Check a specific version without recording it
  whatsnew check --version 13.5.0 --dry-run`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("version", "", "Version to check (default: version in package.json)")
	cobraCmd.Flags().Bool("dry-run", false, "Do not record the version")

	return cobraCmd
}

// Run executes the check command
func (c *CheckCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := c.app.settings(cmd)
	if err != nil {
		return err
	}

	ext, err := c.app.loadExtension(s)
	if err != nil {
		return err
	}

	current, _ := cmd.Flags().GetString("version")
	if current == "" {
		current = ext.Version
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	store, release, err := c.app.openStore(ctx, s)
	if err != nil {
		return err
	}
	defer release()

	key := versioning.VersionKey(ext.Name)
	restricted := c.app.probe(s).IsRestricted()

	var decision versioning.Decision
	if dryRun {
		previous, _, err := store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read stored version: %w", err)
		}
		decision, err = versioning.ShouldShow(current, previous, restricted)
		if err != nil {
			return err
		}
	} else {
		decision, err = versioning.NewGate(store).Evaluate(ctx, key, current, restricted)
		if err != nil {
			return err
		}
	}

	printDecision(cmd.OutOrStdout(), ext.ID(), current, decision, dryRun)
	return nil
}

func printDecision(out io.Writer, id, current string, d versioning.Decision, dryRun bool) {
	_, _ = fmt.Fprintln(out, tui.HeaderStyle.Render(id+" "+current))

	switch {
	case d.Show:
		_, _ = fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("✓ %s upgrade, the page will be shown", d.Diff)))
	case d.Suppressed:
		_, _ = fmt.Fprintln(out, tui.WarningStyle.Render(fmt.Sprintf("⚠ %s upgrade, the page is suppressed in this environment", d.Diff)))
	case d.FirstRun:
		_, _ = fmt.Fprintln(out, tui.SubtleStyle.Render("first activation, the page is not shown"))
	default:
		_, _ = fmt.Fprintln(out, tui.SubtleStyle.Render(fmt.Sprintf("%s change, the page is not shown", d.Diff)))
	}

	switch {
	case d.Record && dryRun:
		_, _ = fmt.Fprintf(out, "would record %s\n", d.RecordedVersion)
	case d.Record:
		_, _ = fmt.Fprintf(out, "recorded %s\n", d.RecordedVersion)
	}
}
