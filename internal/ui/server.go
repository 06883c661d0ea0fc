// Package ui provides the web-based component browser.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/showcase/internal/catalog"
	browserFeature "github.com/leapstack-labs/showcase/internal/ui/features/browser"
	"github.com/leapstack-labs/showcase/internal/ui/notifier"
	"github.com/leapstack-labs/showcase/internal/ui/router"
	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// Viewers idle for this long without an open page are dropped.
const viewerIdleTimeout = 30 * time.Minute

// Server is the showcase UI server.
type Server struct {
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	storiesDir   string
	isDev        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
	library      *browserFeature.Library
	capturer     showcase.Capturer
	runtimeOpts  showcase.Options
}

// Config holds configuration for the UI server.
type Config struct {
	// Load builds the registry; it is called again on every story change
	Load          func() (*core.Registry, error)
	Capturer      showcase.Capturer
	Port          int
	Watch         bool
	Dev           bool
	SessionSecret string
	StoriesDir    string
	// AllowZoomExport permits PNG export while zoomed
	AllowZoomExport bool
	Logger          *slog.Logger
}

// NewServer creates a new UI server instance and performs the first load.
func NewServer(cfg Config) (*Server, error) {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	notify := notifier.New()
	library, err := browserFeature.NewLibrary(cfg.Load, notify, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}

	return &Server{
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		storiesDir:   cfg.StoriesDir,
		isDev:        cfg.Dev,
		logger:       cfg.Logger,
		notifier:     notify,
		library:      library,
		capturer:     cfg.Capturer,
		runtimeOpts:  showcase.Options{AllowZoomExport: cfg.AllowZoomExport},
	}, nil
}

// page is the server's root handler, marked as the showcase page for hosts
// that mount it with showcase.WithShowcase.
type page struct {
	http.Handler
}

func (page) ShowcasePage() {}

var _ showcase.Page = page{}

// Handler builds the HTTP handler. ctx bounds the story loads it starts.
func (s *Server) Handler(ctx context.Context) (showcase.Page, *browserFeature.Viewers, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	viewers := browserFeature.NewViewers(ctx, s.sessionStore, s.library, s.runtimeOpts, s.logger)
	if err := router.SetupRoutes(r, viewers, s.capturer, s.IsDev()); err != nil {
		return nil, nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return page{r}, viewers, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting showcase", "addr", fmt.Sprintf("http://localhost:%d%s", s.port, showcase.Route))

	eg, egctx := errgroup.WithContext(ctx)

	handler, viewers, err := s.Handler(egctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return catalog.Watch(egctx, s.storiesDir, s.logger, s.library.Reload)
		})
	}

	eg.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-egctx.Done():
				return nil
			case <-ticker.C:
				if n := viewers.Prune(viewerIdleTimeout); n > 0 {
					s.logger.Debug("pruned idle viewers", "count", n)
				}
			}
		}
	})

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		s.notifier.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down showcase server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether dev-only behavior (hot reload, contract panics) is on.
func (s *Server) IsDev() bool {
	return s.isDev
}

// Library returns the shared story library.
func (s *Server) Library() *browserFeature.Library {
	return s.library
}
