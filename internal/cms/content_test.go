package cms

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"evalpoint.ai/web/content"
)

func TestLoadParsesFrontMatterAndBody(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"pages/strategy-call.md": {Data: []byte(strings.Join([]string{
			"---",
			"title: Strategy Call",
			"headline: AI Strategy Session",
			"updated_at: 2025-01-15",
			"seo:",
			"  description: Book a session",
			"offer:",
			"  name: AI Strategy Session",
			"  amount_minor: 12900",
			"  currency: usd",
			"  duration_minutes: 60",
			"sections:",
			"  - title: What you get",
			"    items: [\"Review\", \"  \", \"Summary\"]",
			"---",
			"",
			"Bring a **problem**.",
		}, "\n"))},
		"pages/notes.txt": {Data: []byte("ignored")},
	}

	lib, err := Load(fsys, "pages")
	require.NoError(t, err)
	require.Equal(t, []string{"strategy-call"}, lib.Slugs())

	page, err := lib.Get("strategy-call")
	require.NoError(t, err)
	require.Equal(t, "Strategy Call", page.Title)
	require.Equal(t, "AI Strategy Session", page.Headline)
	require.Equal(t, "Book a session", page.SEO.Description)
	require.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, string(page.Body), "<strong>problem</strong>")

	require.NotNil(t, page.Offer)
	require.EqualValues(t, 12900, page.Offer.AmountMinor)
	require.Equal(t, "USD", page.Offer.Currency)
	require.Equal(t, 60, page.Offer.DurationMinutes)

	require.Len(t, page.Sections, 1)
	require.Equal(t, []string{"Review", "Summary"}, page.Sections[0].Items)
}

func TestLoadSanitizesHTML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"pages/about.md": {Data: []byte("Hello [link](javascript:alert(1))\n\n<script>alert(1)</script>\n")},
	}
	lib, err := Load(fsys, "pages")
	require.NoError(t, err)

	page, err := lib.Get("about")
	require.NoError(t, err)
	body := string(page.Body)
	require.NotContains(t, body, "<script")
	require.NotContains(t, body, "javascript:")
	require.Equal(t, "About", page.Title, "title falls back to prettified slug")
	require.Equal(t, "About", page.Headline)
}

func TestLoadRejectsBadFrontMatter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"pages/broken.md": {Data: []byte("---\ntitle: [unclosed\n---\nbody")},
	}
	_, err := Load(fsys, "pages")
	require.Error(t, err)
	require.Contains(t, err.Error(), "pages/broken.md")
}

func TestLoadRejectsNegativeOffer(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"pages/offer.md": {Data: []byte("---\noffer:\n  amount_minor: -1\n---\n")},
	}
	_, err := Load(fsys, "pages")
	require.Error(t, err)
}

func TestGetMissingSlug(t *testing.T) {
	t.Parallel()

	lib, err := Load(fstest.MapFS{"pages/home.md": {Data: []byte("hi")}}, "pages")
	require.NoError(t, err)

	for _, slug := range []string{"blog", "", "../home", "a/b"} {
		_, err := lib.Get(slug)
		require.True(t, errors.Is(err, ErrNotFound), slug)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"pages/services.md": {Data: []byte("---\nsections:\n  - title: One\n    items: [a]\n---\n")},
	}
	lib, err := Load(fsys, "pages")
	require.NoError(t, err)

	first, err := lib.Get("services")
	require.NoError(t, err)
	first.Sections[0].Items[0] = "changed"

	second, err := lib.Get("services")
	require.NoError(t, err)
	require.Equal(t, "a", second.Sections[0].Items[0])
}

func TestEmbeddedContent(t *testing.T) {
	t.Parallel()

	lib, err := Load(content.FS(), content.Dir)
	require.NoError(t, err)
	require.Equal(t, []string{"about", "contact", "home", "services", "strategy-call"}, lib.Slugs())

	call, err := lib.Get("strategy-call")
	require.NoError(t, err)
	require.NotNil(t, call.Offer)
	require.EqualValues(t, 12900, call.Offer.AmountMinor)

	contact, err := lib.Get("contact")
	require.NoError(t, err)
	require.NotNil(t, contact.Contact)
	require.Equal(t, "gabriel@evalpoint.ai", contact.Contact.Email)
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	fm, body := splitFrontMatter("\ufeff---\r\ntitle: x\r\n---\r\n\r\nbody\r\n")
	require.Equal(t, "title: x", fm)
	require.Equal(t, "body\n", body)

	fm, body = splitFrontMatter("---\nno closing fence")
	require.Empty(t, fm)
	require.Equal(t, "---\nno closing fence", body)
}

func TestPrettifySlug(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Strategy Call", prettifySlug("strategy-call"))
	require.Equal(t, "", prettifySlug("  "))
}
