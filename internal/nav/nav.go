package nav

import (
	"path"
	"strings"

	"evalpoint.ai/web/internal/pages"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/services"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Menu is the ordered main navigation.
type Menu struct {
	items []Item
}

// FromTable builds the main navigation from the route table, in registration order.
func FromTable(t *pages.Table) Menu {
	all := t.Pages()
	items := make([]Item, 0, len(all))
	for _, p := range all {
		label := p.NavLabel
		if label == "" {
			label = titleFromSegment(strings.TrimPrefix(p.Path, "/"))
		}
		items = append(items, Item{Path: p.Path, Label: label})
	}
	return Menu{items: items}
}

// Items returns the configured items.
func (m Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Build renders navigation items with active state given the current path.
func (m Menu) Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/services" or "/services/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path, always starting with Home.
func (m Menu) Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: m.label("/", "Home"), Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		href += "/" + part
		label := titleFromSegment(part)
		if i == 0 {
			label = m.label(href, label)
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: i == len(parts)-1})
	}
	return crumbs
}

func (m Menu) label(p, fallback string) string {
	for _, it := range m.items {
		if it.Path == p {
			return it.Label
		}
	}
	return fallback
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize each word
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(seg))
	for i, w := range words {
		r := []rune(w)
		r[0] = toUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
