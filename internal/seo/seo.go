package seo

import (
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
}

// PageMeta assembles page metadata, defaulting OpenGraph and Twitter fields
// from the title, description and canonical URL.
func PageMeta(siteName, baseURL, path, title, description, image string) Meta {
	canonical := AbsoluteURL(baseURL, path)
	card := "summary"
	if image != "" {
		image = AbsoluteURL(baseURL, image)
		card = "summary_large_image"
	}
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}

// AbsoluteURL joins a site base URL and a root-relative path. Absolute
// references are returned unchanged.
func AbsoluteURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(baseURL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
