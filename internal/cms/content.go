// Package cms loads the site's page copy from Markdown files with YAML front matter.
package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no content exists for a slug.
var ErrNotFound = errors.New("cms: content not found")

// ContentPage is the parsed copy for a single page.
type ContentPage struct {
	Slug      string
	Title     string
	Summary   string
	Eyebrow   string
	Headline  string
	Body      template.HTML // sanitized HTML rendered from the Markdown body
	UpdatedAt time.Time
	SEO       ContentSEO
	Sections  []Section
	Offer     *Offer
	Contact   *ContactDetails
	CTA       *CallToAction
}

// ContentSEO holds optional metadata overrides for a page.
type ContentSEO struct {
	Title       string
	Description string
	OGImage     string
}

// Section is a titled group of items, e.g. a service offering.
type Section struct {
	Title   string
	Summary string
	Items   []string
}

// Offer describes a bookable engagement. Amounts are in minor units.
type Offer struct {
	Name            string
	AmountMinor     int64
	Currency        string
	DurationMinutes int
	BookingURL      string
}

// ContactDetails lists the public ways to reach the business.
type ContactDetails struct {
	Email    string
	Location string
	LinkedIn string
}

// CallToAction is a labelled link rendered as a button.
type CallToAction struct {
	Label string
	Href  string
}

type contentFrontMatter struct {
	Title     string                   `yaml:"title"`
	Summary   string                   `yaml:"summary"`
	Eyebrow   string                   `yaml:"eyebrow"`
	Headline  string                   `yaml:"headline"`
	UpdatedAt string                   `yaml:"updated_at"`
	SEO       contentFrontMatterSEO    `yaml:"seo"`
	Sections  []contentFrontMatterSect `yaml:"sections"`
	Offer     *contentFrontMatterOffer `yaml:"offer"`
	Contact   *contentFrontMatterCont  `yaml:"contact"`
	CTA       *contentFrontMatterCTA   `yaml:"cta"`
}

type contentFrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

type contentFrontMatterSect struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Items   []string `yaml:"items"`
}

type contentFrontMatterOffer struct {
	Name            string `yaml:"name"`
	AmountMinor     int64  `yaml:"amount_minor"`
	Currency        string `yaml:"currency"`
	DurationMinutes int    `yaml:"duration_minutes"`
	BookingURL      string `yaml:"booking_url"`
}

type contentFrontMatterCont struct {
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	LinkedIn string `yaml:"linkedin"`
}

type contentFrontMatterCTA struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Library is an immutable set of parsed pages keyed by slug.
type Library struct {
	pages map[string]ContentPage
}

// Load parses every *.md file in dir of fsys. Files are rendered and sanitized once.
func Load(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("cms: read %s: %w", dir, err)
	}

	md := newMarkdown()
	policy := newHTMLPolicy()
	lib := &Library{pages: make(map[string]ContentPage, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		slug := sanitizeSlug(strings.TrimSuffix(entry.Name(), ".md"))
		if slug == "" {
			continue
		}
		file := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("cms: read %s: %w", file, err)
		}
		page, err := parsePage(md, policy, file, slug, data)
		if err != nil {
			return nil, err
		}
		lib.pages[slug] = page
	}
	return lib, nil
}

// Get returns the page for slug.
func (l *Library) Get(slug string) (ContentPage, error) {
	slug = sanitizeSlug(slug)
	if l == nil || slug == "" {
		return ContentPage{}, ErrNotFound
	}
	page, ok := l.pages[slug]
	if !ok {
		return ContentPage{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return clonePage(page), nil
}

// UpdatedAt returns the front matter date for slug, or the zero time when unknown.
func (l *Library) UpdatedAt(slug string) time.Time {
	page, err := l.Get(slug)
	if err != nil {
		return time.Time{}
	}
	return page.UpdatedAt
}

// Slugs returns the loaded slugs in lexical order.
func (l *Library) Slugs() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.pages))
	for slug := range l.pages {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

func parsePage(md goldmark.Markdown, policy *bluemonday.Policy, file, slug string, data []byte) (ContentPage, error) {
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return ContentPage{}, fmt.Errorf("cms: render markdown %s: %w", file, err)
	}

	page := ContentPage{
		Slug:      slug,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Eyebrow:   strings.TrimSpace(front.Eyebrow),
		Headline:  strings.TrimSpace(front.Headline),
		Body:      template.HTML(policy.SanitizeBytes(buf.Bytes())),
		UpdatedAt: parseContentDate(front.UpdatedAt),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	for _, s := range front.Sections {
		sec := Section{Title: strings.TrimSpace(s.Title), Summary: strings.TrimSpace(s.Summary)}
		for _, item := range s.Items {
			if item = strings.TrimSpace(item); item != "" {
				sec.Items = append(sec.Items, item)
			}
		}
		page.Sections = append(page.Sections, sec)
	}
	if o := front.Offer; o != nil {
		if o.AmountMinor < 0 {
			return ContentPage{}, fmt.Errorf("cms: %s: offer amount must not be negative", file)
		}
		page.Offer = &Offer{
			Name:            strings.TrimSpace(o.Name),
			AmountMinor:     o.AmountMinor,
			Currency:        strings.ToUpper(firstNonEmpty(strings.TrimSpace(o.Currency), "USD")),
			DurationMinutes: o.DurationMinutes,
			BookingURL:      strings.TrimSpace(o.BookingURL),
		}
	}
	if c := front.Contact; c != nil {
		page.Contact = &ContactDetails{
			Email:    strings.TrimSpace(c.Email),
			Location: strings.TrimSpace(c.Location),
			LinkedIn: strings.TrimSpace(c.LinkedIn),
		}
	}
	if c := front.CTA; c != nil && strings.TrimSpace(c.Href) != "" {
		page.CTA = &CallToAction{Label: strings.TrimSpace(c.Label), Href: strings.TrimSpace(c.Href)}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if page.Headline == "" {
		page.Headline = page.Title
	}
	return page, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

func newHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "ul", "li")
	policy.RequireNoFollowOnLinks(false)
	return policy
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsRune(slug, '/') {
		return ""
	}
	return slug
}

func clonePage(src ContentPage) ContentPage {
	cp := src
	if src.Sections != nil {
		cp.Sections = make([]Section, len(src.Sections))
		for i, s := range src.Sections {
			s.Items = append([]string(nil), s.Items...)
			cp.Sections[i] = s
		}
	}
	if src.Offer != nil {
		o := *src.Offer
		cp.Offer = &o
	}
	if src.Contact != nil {
		c := *src.Contact
		cp.Contact = &c
	}
	if src.CTA != nil {
		c := *src.CTA
		cp.CTA = &c
	}
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
