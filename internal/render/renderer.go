package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"evalpoint.ai/web/internal/cms"
	"evalpoint.ai/web/internal/format"
	"evalpoint.ai/web/internal/nav"
	"evalpoint.ai/web/internal/observability"
	"evalpoint.ai/web/internal/pages"
	"evalpoint.ai/web/internal/seo"
)

// ErrorTemplate names the page template used for the not-found and
// method-not-allowed documents.
const ErrorTemplate = "error"

type errorPage struct {
	id       string
	status   string
	headline string
	summary  string
}

var (
	notFoundPage = errorPage{
		id:       "not-found",
		status:   "404",
		headline: "Page Not Found",
		summary:  "The page you are looking for does not exist or has moved.",
	}
	methodNotAllowedPage = errorPage{
		id:       "method-not-allowed",
		status:   "405",
		headline: "Method Not Allowed",
		summary:  "This page can only be viewed, not submitted to.",
	}
)

// Renderer serves pre-rendered documents for every page in the route table.
// Documents are built once in NewRenderer and never change afterwards.
type Renderer struct {
	store    *Store
	library  *cms.Library
	site     Site
	menu     nav.Menu
	docs     map[pages.ID][]byte
	notFound []byte
	rejected []byte
}

// NewRenderer validates every page reference and renders all documents up front.
// A missing template or content slug yields a *MisconfiguredError.
func NewRenderer(ctx context.Context, store *Store, library *cms.Library, table *pages.Table, site Site) (*Renderer, error) {
	if store == nil || table == nil {
		return nil, errors.New("render: store and table are required")
	}
	r := &Renderer{
		store:   store,
		library: library,
		site:    site,
		menu:    nav.FromTable(table),
		docs:    make(map[pages.ID][]byte),
	}
	if err := r.Validate(table); err != nil {
		return nil, err
	}

	for _, p := range table.Pages() {
		data, err := r.pageData(p)
		if err != nil {
			return nil, err
		}
		doc, err := r.execute(ctx, string(p.ID), p.Template, data)
		if err != nil {
			return nil, err
		}
		r.docs[p.ID] = doc
	}

	var err error
	if r.notFound, err = r.execute(ctx, notFoundPage.id, ErrorTemplate, r.errorData(table, notFoundPage)); err != nil {
		return nil, err
	}
	if r.rejected, err = r.execute(ctx, methodNotAllowedPage.id, ErrorTemplate, r.errorData(table, methodNotAllowedPage)); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that every page's template and content resolve, plus the error template.
func (r *Renderer) Validate(table *pages.Table) error {
	for _, p := range table.Pages() {
		if _, ok := r.store.Lookup(p.Template); !ok {
			return &MisconfiguredError{Page: string(p.ID), Kind: "template", Ref: p.Template}
		}
		if p.Content == "" {
			continue
		}
		if _, err := r.library.Get(p.Content); err != nil {
			return &MisconfiguredError{Page: string(p.ID), Kind: "content", Ref: p.Content, Err: err}
		}
	}
	if _, ok := r.store.Lookup(ErrorTemplate); !ok {
		return &MisconfiguredError{Page: notFoundPage.id, Kind: "template", Ref: ErrorTemplate}
	}
	return nil
}

// Render returns the document for p. The returned slice is a copy.
func (r *Renderer) Render(ctx context.Context, p pages.Page) ([]byte, error) {
	doc, ok := r.docs[p.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pages.ErrRouteNotFound, p.Path)
	}
	return bytes.Clone(doc), nil
}

// Component exposes the document for p as a templ component.
func (r *Renderer) Component(p pages.Page) (templ.Component, error) {
	doc, ok := r.docs[p.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pages.ErrRouteNotFound, p.Path)
	}
	return templ.Raw(string(doc)), nil
}

// NotFound returns the generic not-found document rendered through the layout.
func (r *Renderer) NotFound() templ.Component {
	return templ.Raw(string(r.notFound))
}

// MethodNotAllowed returns the document served when a known path is requested with an unsupported method.
func (r *Renderer) MethodNotAllowed() templ.Component {
	return templ.Raw(string(r.rejected))
}

func (r *Renderer) execute(ctx context.Context, id, name string, data PageData) ([]byte, error) {
	ctx, span := observability.StartSpan(ctx, "render.page",
		attribute.String("page.id", id),
		attribute.String("page.template", name),
	)
	defer span.End()

	tmpl, ok := r.store.Lookup(name)
	if !ok {
		err := &MisconfiguredError{Page: id, Kind: "template", Ref: name}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	var buf bytes.Buffer
	if err := templ.FromGoHTML(tmpl, data).Render(ctx, &buf); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "template execution failed")
		return nil, &MisconfiguredError{Page: id, Kind: "execute", Ref: name, Err: err}
	}
	span.SetAttributes(attribute.Int("page.bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *Renderer) pageData(p pages.Page) (PageData, error) {
	var content cms.ContentPage
	if p.Content != "" {
		c, err := r.library.Get(p.Content)
		if err != nil {
			return PageData{}, &MisconfiguredError{Page: string(p.ID), Kind: "content", Ref: p.Content, Err: err}
		}
		content = c
	}

	title := content.SEO.Title
	if title == "" {
		title = content.Title + " | " + r.site.Name
	}
	description := firstNonEmpty(content.SEO.Description, content.Summary)

	data := PageData{
		ID:          string(p.ID),
		Lang:        "en",
		Site:        r.site,
		SEO:         seo.PageMeta(r.site.Name, r.site.BaseURL, p.Path, title, description, content.SEO.OGImage),
		Path:        p.Path,
		Nav:         r.menu.Build(p.Path),
		Breadcrumbs: r.menu.Breadcrumbs(p.Path),
		Content:     content,
	}
	if content.Offer != nil && content.Offer.DurationMinutes > 0 {
		data.Duration = format.FmtDuration(content.Offer.DurationMinutes)
	}
	data.JSONLD = r.structuredData(p, data)
	return data, nil
}

func (r *Renderer) structuredData(p pages.Page, data PageData) []map[string]any {
	base := seo.AbsoluteURL(r.site.BaseURL, "/")
	var out []map[string]any
	switch p.ID {
	case pages.Home:
		out = append(out,
			seo.Organization(r.site.Name, base, ""),
			seo.WebSite(r.site.Name, base),
		)
	case pages.Services:
		names := make([]string, 0, len(data.Content.Sections))
		for _, s := range data.Content.Sections {
			names = append(names, s.Title)
		}
		out = append(out, seo.ProfessionalService(r.site.Name, base, data.SEO.Description, names))
	case pages.StrategyCall:
		if o := data.Content.Offer; o != nil {
			out = append(out, seo.Offer(o.Name, data.SEO.Canonical, o.AmountMinor, o.Currency))
		}
	case pages.Contact:
		if c := data.Content.Contact; c != nil {
			out = append(out, seo.Organization(r.site.Name, base, c.Email))
		}
	}
	if len(data.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(data.Breadcrumbs))
		for _, c := range data.Breadcrumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: seo.AbsoluteURL(r.site.BaseURL, c.Href)})
		}
		out = append(out, seo.BreadcrumbList(items))
	}
	return out
}

func (r *Renderer) errorData(table *pages.Table, e errorPage) PageData {
	title := e.headline + " | " + r.site.Name
	cta := &cms.CallToAction{Label: "Back to home", Href: "/"}
	if home, ok := table.Lookup(pages.Home); ok {
		cta.Href = home.Path
	}
	return PageData{
		ID:   e.id,
		Lang: "en",
		Site: r.site,
		SEO: seo.Meta{
			Title:       title,
			Description: e.summary,
			OG:          seo.OpenGraph{Title: title, Type: "website", SiteName: r.site.Name},
			Twitter:     seo.Twitter{Card: "summary"},
		},
		Nav: r.menu.Build("/" + e.id),
		Content: cms.ContentPage{
			Title:    e.headline,
			Eyebrow:  e.status,
			Headline: e.headline,
			Summary:  e.summary,
			CTA:      cta,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
