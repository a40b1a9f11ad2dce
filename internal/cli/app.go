package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alefragnani/vscode-whats-new/internal/config"
	"github.com/alefragnani/vscode-whats-new/internal/content"
	"github.com/alefragnani/vscode-whats-new/internal/environment"
	"github.com/alefragnani/vscode-whats-new/internal/extension"
	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/logger"
	"github.com/alefragnani/vscode-whats-new/internal/manager"
	"github.com/alefragnani/vscode-whats-new/internal/models"
	"github.com/alefragnani/vscode-whats-new/internal/state"
	"github.com/alefragnani/vscode-whats-new/internal/surface"
)

// Persistent flag names
const (
	rootFlag         = "root"
	contentFlag      = "content"
	stateBackendFlag = "state-backend"
	statePathFlag    = "state-path"
	logLevelFlag     = "log-level"
	suppressFlag     = "suppress"
)

// app carries what every command needs
type app struct {
	fs  filesystem.FileSystem
	cfg *config.Config
}

// settings are the effective options of one invocation: config values
// overridden by flags.
type settings struct {
	root        string
	contentPath string
	cfg         config.Config
}

func (a *app) settings(cmd *cobra.Command) (*settings, error) {
	s := &settings{cfg: *a.cfg}

	root, _ := cmd.Flags().GetString(rootFlag)
	if !filepath.IsAbs(root) {
		wd, err := a.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = filepath.Join(wd, root)
	}
	s.root = root

	s.contentPath, _ = cmd.Flags().GetString(contentFlag)
	if s.contentPath == "" {
		s.contentPath = content.DefaultPath
	}
	if !filepath.IsAbs(s.contentPath) {
		s.contentPath = filepath.Join(root, s.contentPath)
	}

	if cmd.Flags().Changed(stateBackendFlag) {
		s.cfg.State.Backend, _ = cmd.Flags().GetString(stateBackendFlag)
	}
	if cmd.Flags().Changed(statePathFlag) {
		s.cfg.State.Path, _ = cmd.Flags().GetString(statePathFlag)
	}
	if cmd.Flags().Changed(logLevelFlag) {
		s.cfg.Log.Level, _ = cmd.Flags().GetString(logLevelFlag)
	}
	if cmd.Flags().Changed(suppressFlag) {
		s.cfg.Suppress, _ = cmd.Flags().GetBool(suppressFlag)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) logger(cmd *cobra.Command) *logger.Logger {
	return logger.New(s.cfg.Log.Level, s.cfg.Log.Format, cmd.ErrOrStderr())
}

// openStore opens the configured state store. The returned func releases it.
func (a *app) openStore(ctx context.Context, s *settings) (state.Store, func(), error) {
	noop := func() {}
	path := s.cfg.State.Path

	switch s.cfg.State.Backend {
	case config.BackendMemory:
		return state.NewMemoryStore(), noop, nil
	case config.BackendFile:
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.root, path)
		}
		return state.NewFileStore(a.fs, path), noop, nil
	case config.BackendSQLite:
		store, err := state.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.BackendRedis:
		store, err := state.DialRedis(ctx, s.cfg.State.RedisAddr, s.cfg.State.RedisPassword, s.cfg.State.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend: %s", s.cfg.State.Backend)
	}
}

func (a *app) loadExtension(s *settings) (*models.Extension, error) {
	return extension.Load(a.fs, s.root)
}

func (a *app) loadContent(s *settings) (*content.FileProvider, error) {
	return content.LoadFile(a.fs, s.contentPath)
}

func (a *app) probe(s *settings) *environment.OSProbe {
	return environment.NewOSProbe(s.cfg.Suppress)
}

// newManager wires a Manager for the extension at the settings root
func (a *app) newManager(cmd *cobra.Command, s *settings, store state.Store, surf surface.Surface) (*manager.Manager, error) {
	ext, err := a.loadExtension(s)
	if err != nil {
		return nil, err
	}

	provider, err := a.loadContent(s)
	if err != nil {
		return nil, err
	}

	return manager.New(ext, provider, store, surf,
		manager.WithProbe(a.probe(s)),
		manager.WithLogger(s.logger(cmd)),
		manager.WithTemplateSource(manager.LayeredTemplateSource{
			manager.NewFileTemplateSource(a.fs, s.root),
			manager.EmbeddedTemplateSource{},
		}),
	)
}
