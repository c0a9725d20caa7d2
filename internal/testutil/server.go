package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"evalpoint.ai/web/internal/httpserver"
	"evalpoint.ai/web/internal/render"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithDebug enables debug mode.
func WithDebug() ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Debug = true
	}
}

// WithLogger wires a custom logger, e.g. an observer core.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithSite overrides the site settings.
func WithSite(site render.Site) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Site = site
	}
}

// NewServer constructs an httptest server running the site HTTP stack with the embedded assets.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address: ":0",
		Site:    render.Site{Name: "EvalPoint", BaseURL: "https://evalpoint.ai"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// Get issues a GET request and returns the response with its fully read body.
func Get(t testing.TB, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	return Do(t, http.MethodGet, url, header)
}

// Do issues a bodiless request with the given method and returns the response with its body read.
func Do(t testing.TB, method, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}
