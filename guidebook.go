// Package guidebook serves a catalog of guides as a small web application.
// Every visitor gets the same state machine (package browser) whether the
// page is rendered on the server, driven over a WebSocket, or browsed from
// the terminal.
//
// Users may replace the built-in views through ViewFuncs; guidebook
// handles routing, sessions, preference storage and catalog reloads.
package guidebook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/guide"
	"github.com/eringen/guidebook/prefs"
	"github.com/eringen/guidebook/views"
)

// ViewFuncs holds the templ components the handlers render. DefaultViews
// returns the built-in set.
type ViewFuncs struct {
	Document      func(site views.SiteInfo, m *browser.Model, opts views.PageOptions) templ.Component
	Header        func(site views.SiteInfo, m *browser.Model, opts views.PageOptions) templ.Component
	Main          func(site views.SiteInfo, m *browser.Model) templ.Component
	SearchResults func(query string, matched []guide.Guide) templ.Component
	ServerError   func(site views.SiteInfo) templ.Component
}

// DefaultViews returns the views shipped with guidebook.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Document:      views.Document,
		Header:        views.Header,
		Main:          views.Main,
		SearchResults: views.SearchResults,
		ServerError:   views.ServerError,
	}
}

// App is the central guidebook application. It wires together the
// catalog, preference storage, handlers, middleware and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *Catalog
	Prefs   prefs.Backend
	Views   ViewFuncs
	Logger  *slog.Logger

	searchLimiter *SearchLimiter
	customRoutes  []func(*App)
	staticDir     string
	closers       []func() error
	ready         bool
}

// New creates a guidebook App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		Logger:    slog.Default(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup loads the catalog, opens preference storage and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("guidebook: SessionSecret is required")
	}

	if a.Catalog == nil {
		a.Catalog = NewCatalog(os.DirFS(a.Config.GuidesDir), a.Config.GuidesGlob)
		if err := a.Catalog.Reload(); err != nil {
			return err
		}
	}
	if len(a.Catalog.Guides()) == 0 {
		a.Logger.Warn("catalog is empty", "dir", a.Config.GuidesDir, "pattern", a.Config.GuidesGlob)
	}

	if a.Prefs == nil {
		backend, err := prefs.OpenSQLite(a.Config.PrefsDB)
		if err != nil {
			return fmt.Errorf("guidebook: init prefs: %w", err)
		}
		a.Prefs = backend
		a.closers = append(a.closers, backend.Close)
	}

	a.searchLimiter = NewSearchLimiter(a.Config.SearchRate, a.Config.SearchBurst, 10*time.Minute)
	a.closers = append(a.closers, func() error {
		a.searchLimiter.Stop()
		return nil
	})

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start sets the app up, watches the catalog when configured and serves
// until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	if a.Config.Watch {
		go func() {
			err := guide.Watch(ctx, a.Config.GuidesDir, a.Logger, func() {
				if err := a.Catalog.Reload(); err != nil {
					a.Logger.Error("reload catalog", "error", err)
					return
				}
				a.Logger.Info("catalog reloaded", "guides", len(a.Catalog.Guides()))
			})
			if err != nil {
				a.Logger.Error("watch catalog", "dir", a.Config.GuidesDir, "error", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", "addr", a.Config.Addr, "guides", len(a.Catalog.Guides()))
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("guidebook: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served from the binary; anything else under
	// /public falls through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/guidebook.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/guidebook.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/highlight.css", a.handleHighlightCSS)
	e.Static("/public", a.staticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/search", a.handleSearch)
	e.POST("/mode", a.handleMode)
	e.GET("/ws", a.handleLive)

	e.GET("/", a.handlePage)
	e.GET("/*", a.handlePage)
}

// Close releases preference storage opened by Setup and stops background
// workers.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) siteInfo() views.SiteInfo {
	return views.SiteInfo{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Version:     browser.Version,
		VersionDate: browser.VersionDate,
	}
}
