// Package pages defines the fixed route table mapping URL paths to site pages.
package pages

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies a page of the site.
type ID string

const (
	Home         ID = "home"
	About        ID = "about"
	Services     ID = "services"
	StrategyCall ID = "strategy-call"
	Contact      ID = "contact"
)

// ErrRouteNotFound is returned when a path has no page registered.
var ErrRouteNotFound = errors.New("pages: route not found")

// Page is an immutable route entry.
type Page struct {
	ID       ID
	Path     string // e.g. "/strategy-call"
	Template string // template name under templates/pages, e.g. "strategy_call"
	Content  string // content slug under content/pages
	NavLabel string
}

// Table is an ordered, read-only path -> Page mapping.
type Table struct {
	pages  []Page
	byPath map[string]int
	byID   map[ID]int
}

// NewTable validates pages and returns a table preserving registration order.
func NewTable(pages ...Page) (*Table, error) {
	t := &Table{
		pages:  make([]Page, 0, len(pages)),
		byPath: make(map[string]int, len(pages)),
		byID:   make(map[ID]int, len(pages)),
	}
	for _, p := range pages {
		switch {
		case strings.TrimSpace(string(p.ID)) == "":
			return nil, fmt.Errorf("pages: page for path %q has no id", p.Path)
		case !strings.HasPrefix(p.Path, "/"):
			return nil, fmt.Errorf("pages: page %q has invalid path %q", p.ID, p.Path)
		case strings.TrimSpace(p.Template) == "":
			return nil, fmt.Errorf("pages: page %q has no template", p.ID)
		}
		if _, dup := t.byPath[p.Path]; dup {
			return nil, fmt.Errorf("pages: duplicate path %q", p.Path)
		}
		if _, dup := t.byID[p.ID]; dup {
			return nil, fmt.Errorf("pages: duplicate id %q", p.ID)
		}
		t.byPath[p.Path] = len(t.pages)
		t.byID[p.ID] = len(t.pages)
		t.pages = append(t.pages, p)
	}
	return t, nil
}

// Resolve returns the page registered for path. Matching is exact, so
// "/about/" does not resolve to "/about".
func (t *Table) Resolve(path string) (Page, error) {
	if i, ok := t.byPath[path]; ok {
		return t.pages[i], nil
	}
	return Page{}, fmt.Errorf("%w: %q", ErrRouteNotFound, path)
}

// Lookup returns the page with the given id.
func (t *Table) Lookup(id ID) (Page, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Page{}, false
	}
	return t.pages[i], true
}

// Pages returns the pages in registration order.
func (t *Table) Pages() []Page {
	out := make([]Page, len(t.pages))
	copy(out, t.pages)
	return out
}

// Catalogue lists the site's pages in navigation order.
func Catalogue() []Page {
	return []Page{
		{ID: Home, Path: "/", Template: "home", Content: "home", NavLabel: "Home"},
		{ID: About, Path: "/about", Template: "about", Content: "about", NavLabel: "About"},
		{ID: Services, Path: "/services", Template: "services", Content: "services", NavLabel: "Services"},
		{ID: StrategyCall, Path: "/strategy-call", Template: "strategy_call", Content: "strategy-call", NavLabel: "Strategy Call"},
		{ID: Contact, Path: "/contact", Template: "contact", Content: "contact", NavLabel: "Contact"},
	}
}

// Default builds the table for the site catalogue.
func Default() *Table {
	t, err := NewTable(Catalogue()...)
	if err != nil {
		panic(err)
	}
	return t
}
