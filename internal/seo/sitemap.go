package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is a single <url> element.
type SitemapEntry struct {
	Path         string
	LastModified time.Time
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders an XML sitemap for the given entries in order.
func Sitemap(baseURL string, entries []SitemapEntry) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		u := sitemapURL{Loc: AbsoluteURL(baseURL, e.Path)}
		if !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("seo: encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots renders robots.txt allowing all crawlers and pointing at the sitemap.
func Robots(baseURL string, disallow ...string) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if len(disallow) == 0 {
		b.WriteString("Allow: /\n")
	}
	for _, p := range disallow {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\nSitemap: " + AbsoluteURL(baseURL, "/sitemap.xml") + "\n")
	return []byte(b.String())
}
