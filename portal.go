// Package portal serves a personal portfolio and blog built with Go, Echo,
// and templ. Posts are markdown files with front-matter; they are mirrored
// into SQLite on load and listed newest first.
//
// Pages are rendered by the components in ViewFuncs, which default to the
// views package and can be replaced with WithViews.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/simars/portal/content"
	"github.com/simars/portal/markdown"
	"github.com/simars/portal/views"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(cfg views.SiteConfig, posts []content.Post) templ.Component
	Blog        func(cfg views.SiteConfig, posts []content.Post) templ.Component
	About       func(cfg views.SiteConfig, body templ.Component) templ.Component
	Post        func(cfg views.SiteConfig, post content.Post) templ.Component
	NotFound    func(cfg views.SiteConfig) templ.Component
	ServerError func(cfg views.SiteConfig) templ.Component
}

// DefaultViews renders pages with the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Blog:        views.Blog,
		About:       views.About,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central portal application. It wires together the store,
// cache, handlers, middleware, and page components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	metrics      *appMetrics
	setupOnce    sync.Once
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		metrics:   newAppMetrics(),
		staticDir: "static",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open initializes the store and cache and performs the first content load.
func (a *App) Open(ctx context.Context) error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("portal: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	return a.Reload(ctx)
}

// Reload reads the content directory into the store and drops the cache.
// Files that fail to parse are logged and skipped. When the directory
// itself cannot be read the store keeps its current posts and the error is
// returned.
func (a *App) Reload(ctx context.Context) error {
	posts, err := content.Load(a.Config.PostsDir())
	if errors.Is(err, content.ErrUnreadableDir) {
		a.metrics.reloads.WithLabelValues("error").Inc()
		return fmt.Errorf("portal: load %s: %w", a.Config.PostsDir(), err)
	}
	for _, fileErr := range multierr.Errors(err) {
		log.Warnf("skipping post: %v", fileErr)
	}
	if err := a.Store.ReplaceAll(ctx, posts); err != nil {
		a.metrics.reloads.WithLabelValues("error").Inc()
		return fmt.Errorf("portal: store posts: %w", err)
	}
	a.Cache.Invalidate()

	all, err := a.Store.ListAllPosts(ctx)
	if err != nil {
		return fmt.Errorf("portal: list posts: %w", err)
	}
	published, drafts := 0, 0
	for _, p := range all {
		if p.Published {
			published++
			continue
		}
		drafts++
		log.Debugf("draft %s (%s) not listed", p.Source, p.Path)
	}
	a.metrics.posts.WithLabelValues("published").Set(float64(published))
	a.metrics.posts.WithLabelValues("draft").Set(float64(drafts))
	a.metrics.reloads.WithLabelValues("ok").Inc()
	log.Infof("loaded %d published posts, %d drafts from %s", published, drafts, a.Config.PostsDir())
	return nil
}

// Start sets up middleware and routes and serves until ctx is cancelled,
// then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if a.Store == nil {
		if err := a.Open(ctx); err != nil {
			return err
		}
	}

	a.Setup()

	if a.Config.Watch {
		go a.watch(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", a.Config.Addr)
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) watch(ctx context.Context) {
	dir := a.Config.PostsDir()
	if _, err := os.Stat(dir); err != nil {
		log.Warnf("not watching %s: %v", dir, err)
		return
	}
	log.Infof("watching %s for changes", dir)
	err := content.Watch(ctx, dir, 500*time.Millisecond, func() {
		if err := a.Reload(ctx); err != nil {
			log.Errorf("reload content: %v", err)
		}
	})
	if err != nil {
		log.Errorf("content watcher stopped: %v", err)
	}
}

// Setup installs middleware, routes and custom routes on a.Echo. Start
// calls it; tests call it directly and drive a.Echo as an http.Handler.
func (a *App) Setup() {
	a.setupOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, falling through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	if a.Config.MetricsEnabled {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: a.metrics.registry,
		}))
	}

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlog)
	e.GET("/about", a.handleAbout)
	e.GET("/*", a.handlePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// AboutBody renders the about document, or returns nil when there is none.
func (a *App) AboutBody() (templ.Component, error) {
	raw, err := os.ReadFile(a.Config.AboutFile())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("portal: read about page: %w", err)
	}
	return markdown.Markdown(string(raw)), nil
}
