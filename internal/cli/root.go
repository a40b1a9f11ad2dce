package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/config"
	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, cfg *config.Config) *cobra.Command {
	a := &app{fs: fs, cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "whatsnew",
		Short: "Show a \"what's new\" page after an extension upgrade",
		Long: `A CLI tool for the "what's new" page of an extension.

It remembers the last version seen, decides when an upgrade deserves the page,
and renders the page from a template and a content file.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(rootFlag, ".", "Extension root directory (holds package.json)")
	flags.String(contentFlag, "", "Content file (default <root>/vscode-whats-new/content.md)")
	flags.String(stateBackendFlag, cfg.State.Backend, "State backend: file, sqlite, redis or memory")
	flags.String(statePathFlag, cfg.State.Path, "State file (file backend) or DSN (sqlite backend)")
	flags.String(logLevelFlag, cfg.Log.Level, "Log level")
	flags.Bool(suppressFlag, cfg.Suppress, "Never show the page, as in a restricted environment")

	rootCmd.AddCommand(NewCheckCommand(a))
	rootCmd.AddCommand(NewRenderCommand(a))
	rootCmd.AddCommand(NewShowCommand(a))
	rootCmd.AddCommand(NewServeCommand(a))
	rootCmd.AddCommand(NewAddCommand(a))
	rootCmd.AddCommand(NewChangelogCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs, cfg)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
