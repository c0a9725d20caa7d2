package pages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultResolvesEveryPage(t *testing.T) {
	t.Parallel()

	table := Default()
	cases := map[string]ID{
		"/":              Home,
		"/about":         About,
		"/services":      Services,
		"/strategy-call": StrategyCall,
		"/contact":       Contact,
	}
	for path, want := range cases {
		page, err := table.Resolve(path)
		require.NoError(t, err, path)
		require.Equal(t, want, page.ID)
		require.Equal(t, path, page.Path)
	}
}

func TestResolveIsExactMatch(t *testing.T) {
	t.Parallel()

	table := Default()
	for _, path := range []string{"/about/", "/About", "/nonexistent-page", "", "//", "/services?x=1"} {
		_, err := table.Resolve(path)
		require.Error(t, err, path)
		require.True(t, errors.Is(err, ErrRouteNotFound), path)
	}
}

func TestPagesKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	table := Default()
	paths := make([]string, 0, 5)
	for _, p := range table.Pages() {
		paths = append(paths, p.Path)
	}
	require.Equal(t, []string{"/", "/about", "/services", "/strategy-call", "/contact"}, paths)

	// callers cannot mutate the table through the returned slice
	table.Pages()[0].Path = "/changed"
	page, err := table.Resolve("/")
	require.NoError(t, err)
	require.Equal(t, Home, page.ID)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	page, ok := Default().Lookup(StrategyCall)
	require.True(t, ok)
	require.Equal(t, "strategy_call", page.Template)

	_, ok = Default().Lookup("blog")
	require.False(t, ok)
}

func TestNewTableRejectsInvalidPages(t *testing.T) {
	t.Parallel()

	cases := map[string][]Page{
		"missing id":     {{Path: "/", Template: "home"}},
		"relative path":  {{ID: Home, Path: "home", Template: "home"}},
		"no template":    {{ID: Home, Path: "/"}},
		"duplicate path": {{ID: Home, Path: "/", Template: "home"}, {ID: About, Path: "/", Template: "about"}},
		"duplicate id":   {{ID: Home, Path: "/", Template: "home"}, {ID: Home, Path: "/home", Template: "home"}},
	}
	for name, pages := range cases {
		_, err := NewTable(pages...)
		require.Error(t, err, name)
	}
}
