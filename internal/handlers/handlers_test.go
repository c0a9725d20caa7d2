package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"evalpoint.ai/web/internal/pages"
)

type stubRenderer struct {
	docs map[pages.ID]string
}

func (s stubRenderer) Component(p pages.Page) (templ.Component, error) {
	doc, ok := s.docs[p.ID]
	if !ok {
		return nil, pages.ErrRouteNotFound
	}
	return templ.Raw(doc), nil
}

func (s stubRenderer) NotFound() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>Page Not Found</h1>")
		return err
	})
}

func (s stubRenderer) MethodNotAllowed() templ.Component {
	return templ.Raw("<h1>Method Not Allowed</h1>")
}

type stubDates map[string]time.Time

func (s stubDates) UpdatedAt(slug string) time.Time { return s[slug] }

func TestHealthBodyIsExact(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, `{"status": "healthy"}`, rec.Body.String())

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, Healthy, status)
}

func TestPageServesDocument(t *testing.T) {
	t.Parallel()

	renderer := stubRenderer{docs: map[pages.ID]string{pages.Home: "<h1>Build AI That Lasts</h1>"}}
	h, err := Page(renderer, pages.Page{ID: pages.Home, Path: "/"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "<h1>Build AI That Lasts</h1>", rec.Body.String())

	_, err = Page(renderer, pages.Page{ID: pages.About, Path: "/about"})
	require.True(t, errors.Is(err, pages.ErrRouteNotFound))
}

func TestNotFoundNegotiatesFormat(t *testing.T) {
	t.Parallel()

	h := NotFound(stubRenderer{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent-page", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Page Not Found")

	req := httptest.NewRequest(http.MethodGet, "/nonexistent-page", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "not_found", payload["error"])
}

func TestMethodNotAllowedNegotiatesFormat(t *testing.T) {
	t.Parallel()

	h := MethodNotAllowed(stubRenderer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/about", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Method Not Allowed")

	req = httptest.NewRequest(http.MethodPost, "/about", nil)
	req.Header.Set("Accept", "text/html;q=0.1, application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "method_not_allowed", payload["error"])
}

func TestRobots(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Robots("https://evalpoint.ai")(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "Sitemap: https://evalpoint.ai/sitemap.xml")
}

func TestSitemapListsTablePages(t *testing.T) {
	t.Parallel()

	dates := stubDates{"about": time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}
	h, err := Sitemap("https://evalpoint.ai", pages.Default(), dates)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, loc := range []string{"https://evalpoint.ai/", "https://evalpoint.ai/about", "https://evalpoint.ai/services", "https://evalpoint.ai/strategy-call", "https://evalpoint.ai/contact"} {
		require.Contains(t, body, "<loc>"+loc+"</loc>")
	}
	require.Equal(t, 1, strings.Count(body, "<lastmod>"))
	require.Contains(t, body, "<lastmod>2025-01-15</lastmod>")
}
