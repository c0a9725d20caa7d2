package render

import (
	"evalpoint.ai/web/internal/cms"
	"evalpoint.ai/web/internal/nav"
	"evalpoint.ai/web/internal/seo"
)

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string
}

// Site carries the site-wide settings every page needs.
type Site struct {
	Name      string
	BaseURL   string
	Analytics Analytics
}

// PageData is the view model for a page rendered with the shared layout.
type PageData struct {
	ID   string
	Lang string
	Site Site
	SEO  seo.Meta

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	Content  cms.ContentPage
	Duration string // formatted offer length, e.g. "60 minutes"
	JSONLD   []map[string]any
}
