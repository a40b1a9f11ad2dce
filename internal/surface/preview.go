package surface

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const assetsPrefix = "/assets"

var _ Surface = (*PreviewServer)(nil)

// PreviewServer serves the last shown page over HTTP, along with the
// extension assets it references.
type PreviewServer struct {
	app    *fiber.App
	assets []fs.FS
	log    zerolog.Logger

	mu      sync.RWMutex
	page    *Page
	shownAt time.Time
}

// NewPreviewServer creates a new PreviewServer. Assets are looked up in each
// file system in turn, so the extension root can be layered over defaults.
func NewPreviewServer(log zerolog.Logger, assets ...fs.FS) *PreviewServer {
	s := &PreviewServer{
		assets: assets,
		log:    log,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "whatsnew preview",
		DisableStartupMessage: true,
	})

	s.app.Get("/", s.handlePage)
	s.app.Get("/page.json", s.handlePageInfo)
	s.app.Get(assetsPrefix+"/*", s.handleAsset)

	return s
}

// App exposes the underlying fiber app
func (s *PreviewServer) App() *fiber.App {
	return s.app
}

// Listen serves until the context is canceled or the listener fails
func (s *PreviewServer) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *PreviewServer) Show(ctx context.Context, page Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = &page
	s.shownAt = time.Now()
	s.log.Debug().Str("title", page.Title).Int("bytes", len(page.HTML)).Msg("preview page updated")
	return nil
}

func (s *PreviewServer) AssetURI(p string) string {
	rel := cleanAssetPath(p)
	if rel == "" {
		return assetsPrefix
	}
	return assetsPrefix + "/" + rel
}

func (s *PreviewServer) CSPSource() string {
	return "'self'"
}

func (s *PreviewServer) current() (Page, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.page == nil {
		return Page{}, time.Time{}, false
	}
	return *s.page, s.shownAt, true
}

func (s *PreviewServer) handlePage(c *fiber.Ctx) error {
	page, _, ok := s.current()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no page has been shown yet")
	}

	c.Type("html", "utf-8")
	return c.SendString(page.HTML)
}

func (s *PreviewServer) handlePageInfo(c *fiber.Ctx) error {
	page, shownAt, ok := s.current()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no page has been shown yet")
	}

	return c.JSON(fiber.Map{
		"title":   page.Title,
		"bytes":   len(page.HTML),
		"shownAt": shownAt.UTC().Format(time.RFC3339),
	})
}

func (s *PreviewServer) handleAsset(c *fiber.Ctx) error {
	rel := cleanAssetPath(c.Params("*"))
	if rel == "" || !fs.ValidPath(rel) {
		return fiber.ErrNotFound
	}

	for _, fsys := range s.assets {
		data, err := fs.ReadFile(fsys, rel)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Type(path.Ext(rel))
		return c.Send(data)
	}
	return fiber.ErrNotFound
}
