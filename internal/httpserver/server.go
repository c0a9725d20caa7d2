package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"evalpoint.ai/web/content"
	"evalpoint.ai/web/internal/assets"
	"evalpoint.ai/web/internal/cms"
	"evalpoint.ai/web/internal/handlers"
	"evalpoint.ai/web/internal/observability"
	"evalpoint.ai/web/internal/pages"
	"evalpoint.ai/web/internal/render"
	"evalpoint.ai/web/public"
	"evalpoint.ai/web/templates"
)

const (
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime options for the site HTTP server. Zero values fall back
// to the embedded templates, content and assets.
type Config struct {
	Address string
	Debug   bool
	Logger  *zap.Logger
	Site    render.Site

	Pages      *pages.Table
	Templates  fs.FS
	Content    fs.FS
	ContentDir string
	Static     fs.FS

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// New constructs the HTTP server. It fails when a page references a template
// or content entry that does not exist, so misconfiguration never reaches traffic.
func New(ctx context.Context, cfg Config) (*http.Server, error) {
	cfg, err := withDefaults(cfg)
	if err != nil {
		return nil, err
	}
	handler, err := NewHandler(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          zap.NewStdLog(cfg.Logger.Named("http")),
	}, nil
}

// NewHandler builds the router with the full middleware stack.
func NewHandler(ctx context.Context, cfg Config) (http.Handler, error) {
	cfg, err := withDefaults(cfg)
	if err != nil {
		return nil, err
	}

	store, err := render.NewStore(cfg.Templates, render.Funcs())
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}
	library, err := cms.Load(cfg.Content, cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}
	renderer, err := render.NewRenderer(ctx, store, library, cfg.Pages, cfg.Site)
	if err != nil {
		return nil, err
	}

	notFound := handlers.NotFound(renderer)
	assetOpts := []assets.Option{assets.WithNotFound(notFound)}
	if cfg.Debug {
		assetOpts = append(assetOpts, assets.WithNoCache())
	}
	static, err := assets.Handler(cfg.Static, assetOpts...)
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}
	sitemap, err := handlers.Sitemap(cfg.Site.BaseURL, cfg.Pages, library)
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware())
	router.Use(observability.InjectLoggerMiddleware(cfg.Logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(cfg.Logger))
	router.Use(secureHeaders)
	router.Use(chimw.GetHead)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(cfg.RequestTimeout))

	router.Get("/health", handlers.Health)
	router.Get("/static/*", http.StripPrefix("/static", static).ServeHTTP)

	for _, p := range cfg.Pages.Pages() {
		h, err := handlers.Page(renderer, p)
		if err != nil {
			return nil, fmt.Errorf("httpserver: page %s: %w", p.ID, err)
		}
		router.Method(http.MethodGet, p.Path, h)
	}

	var disallow []string
	if cfg.Debug {
		router.Mount("/debug", chimw.Profiler())
		disallow = append(disallow, "/debug/")
	}
	router.Get("/robots.txt", handlers.Robots(cfg.Site.BaseURL, disallow...))
	router.Get("/sitemap.xml", sitemap)

	router.NotFound(notFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed(renderer))

	cfg.Logger.Debug("router ready",
		zap.Int("pages", len(cfg.Pages.Pages())),
		zap.Strings("templates", store.Names()),
		zap.Strings("content", library.Slugs()),
		zap.Bool("debug", cfg.Debug),
	)
	return router, nil
}

func withDefaults(cfg Config) (Config, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Site.Name == "" {
		return Config{}, errors.New("httpserver: site name is required")
	}
	if cfg.Pages == nil {
		cfg.Pages = pages.Default()
	}
	if cfg.Templates == nil {
		cfg.Templates = templates.FS()
	}
	if cfg.Content == nil {
		cfg.Content = content.FS()
		cfg.ContentDir = content.Dir
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = content.Dir
	}
	if cfg.Static == nil {
		static, err := public.StaticFS()
		if err != nil {
			return Config{}, fmt.Errorf("httpserver: embed static: %w", err)
		}
		cfg.Static = static
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	return cfg, nil
}
