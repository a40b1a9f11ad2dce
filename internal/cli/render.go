package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/state"
	"github.com/alefragnani/vscode-whats-new/internal/surface"
)

// RenderCommand handles the render command
type RenderCommand struct {
	app *app
}

// NewRenderCommand creates a new render command
func NewRenderCommand(a *app) *cobra.Command {
	cmd := &RenderCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page, regardless of versions",
		Long: `Renders the "what's new" page from the template and the content file.

Asset paths point at the extension directory. Nothing is recorded.`,
		Example: `  # Print the page
  whatsnew render

  # Write it to a file
  whatsnew render --output whats-new.html`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("output", "o", "", "Write the page to this file instead of stdout")

	return cobraCmd
}

// Run executes the render command
func (c *RenderCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.app.settings(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" && !filepath.IsAbs(output) {
		wd, err := c.app.fs.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		output = filepath.Join(wd, output)
	}

	surf := surface.NewFileSurface(c.app.fs, s.root, output)
	m, err := c.app.newManager(cmd, s, state.NewMemoryStore(), surf)
	if err != nil {
		return err
	}

	if output != "" {
		if err := m.ShowPage(cmd.Context()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
		return nil
	}

	html, err := m.Render()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), html)
	return nil
}
