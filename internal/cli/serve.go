package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/state"
	"github.com/alefragnani/vscode-whats-new/internal/surface"
	"github.com/alefragnani/vscode-whats-new/internal/ui"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *app
}

// NewServeCommand creates a new serve command
func NewServeCommand(a *app) *cobra.Command {
	cmd := &ServeCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the page in a browser",
		Long: `Renders the page and serves it over HTTP, together with the extension
images and stylesheet. Nothing is recorded.`,
		Example: `  whatsnew serve --addr 127.0.0.1:3000`,
		RunE:    cmd.Run,
	}

	cobraCmd.Flags().String("addr", a.cfg.Preview.Addr, "Address to listen on")

	return cobraCmd
}

// Run executes the serve command
func (c *ServeCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.app.settings(cmd)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")

	log := s.logger(cmd)
	server := surface.NewPreviewServer(log.Zerolog(), os.DirFS(s.root), ui.RootFS())

	m, err := c.app.newManager(cmd, s, state.NewMemoryStore(), server)
	if err != nil {
		return err
	}
	if err := m.ShowPage(cmd.Context()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Previewing %s at http://%s\n", m.Title(), addr)
	return serve(ctx, server, addr)
}

func serve(ctx context.Context, server *surface.PreviewServer, addr string) error {
	if err := server.Listen(ctx, addr); err != nil {
		return fmt.Errorf("preview server failed: %w", err)
	}
	return nil
}
