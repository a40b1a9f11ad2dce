package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/content"
	"github.com/alefragnani/vscode-whats-new/internal/tui/add"
)

// AddCommand handles the add command
type AddCommand struct {
	app *app

	// interactive reports whether the form can be shown
	interactive func() bool
}

// NewAddCommand creates a new add command
func NewAddCommand(a *app) *cobra.Command {
	cmd := &AddCommand{
		app: a,
		interactive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
	}

	cobraCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a changelog entry to the content file",
		Long: `Adds an entry to the newest release of the content file.

Without --kind and --message, a form asks for the entry.`,
		Example: `  # Interactive
  whatsnew add

  # Start a release and credit a pull request
  whatsnew add --release 13.5.0 --date "March 2024" --kind NEW --message "Adds walkthrough" --pr 42 --kudos @octocat`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("kind", "", "Entry kind: NEW, CHANGED, FIXED or INTERNAL")
	cobraCmd.Flags().StringP("message", "m", "", "Entry message")
	cobraCmd.Flags().String("issue", "", "Issue number the entry refers to")
	cobraCmd.Flags().String("pr", "", "Pull request number the entry refers to")
	cobraCmd.Flags().String("kudos", "", "Who to thank for the pull request")
	cobraCmd.Flags().String("release", "", "Start a new release section with this version")
	cobraCmd.Flags().String("date", "", "Release date of the new section")
	cobraCmd.MarkFlagsMutuallyExclusive("issue", "pr")

	return cobraCmd
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.app.settings(cmd)
	if err != nil {
		return err
	}

	provider, err := c.app.loadContent(s)
	if errors.Is(err, fs.ErrNotExist) {
		provider = content.NewFileProvider(c.app.fs, s.contentPath)
	} else if err != nil {
		return err
	}

	answers := answersFromFlags(cmd)

	var result *add.Result
	if answers.Kind == "" && answers.Message == "" {
		if !c.interactive() {
			return fmt.Errorf("--kind and --message are required when not running in a terminal")
		}
		result, err = add.NewFlow(provider).Run()
		if err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
	} else {
		result, err = add.Apply(provider, answers)
		if err != nil {
			return err
		}
	}

	if result == nil {
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), add.RenderSuccess(result))
	return nil
}

func answersFromFlags(cmd *cobra.Command) add.Answers {
	flags := cmd.Flags()
	answers := add.Answers{Reference: add.RefNone}

	answers.Kind, _ = flags.GetString("kind")
	answers.Message, _ = flags.GetString("message")
	answers.Kudos, _ = flags.GetString("kudos")
	answers.Release, _ = flags.GetString("release")
	answers.ReleaseDate, _ = flags.GetString("date")

	if issue, _ := flags.GetString("issue"); issue != "" {
		answers.Reference = add.RefIssue
		answers.IssueID = issue
	}
	if pr, _ := flags.GetString("pr"); pr != "" {
		answers.Reference = add.RefPR
		answers.IssueID = pr
	}
	return answers
}
