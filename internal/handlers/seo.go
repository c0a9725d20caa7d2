package handlers

import (
	"net/http"
	"time"

	"evalpoint.ai/web/internal/pages"
	"evalpoint.ai/web/internal/seo"
)

// ContentDates reports the last modification date for a content slug.
type ContentDates interface {
	UpdatedAt(slug string) time.Time
}

// Robots serves robots.txt. disallow lists paths crawlers should skip.
func Robots(baseURL string, disallow ...string) http.HandlerFunc {
	body := seo.Robots(baseURL, disallow...)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body)
	}
}

// Sitemap serves sitemap.xml listing every page of the table. The document is built once.
func Sitemap(baseURL string, table *pages.Table, dates ContentDates) (http.HandlerFunc, error) {
	all := table.Pages()
	entries := make([]seo.SitemapEntry, 0, len(all))
	for _, p := range all {
		entry := seo.SitemapEntry{Path: p.Path}
		if dates != nil && p.Content != "" {
			entry.LastModified = dates.UpdatedAt(p.Content)
		}
		entries = append(entries, entry)
	}
	body, err := seo.Sitemap(baseURL, entries)
	if err != nil {
		return nil, err
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body)
	}, nil
}
