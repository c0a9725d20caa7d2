// Package render turns route table pages into HTML documents using the shared layout.
package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const (
	layoutGlob  = "layouts/*.tmpl"
	partialGlob = "partials/*.tmpl"
	pagesDir    = "pages"
	baseName    = "base"
)

// Store holds one parsed template set per page. Each set shares the layout and
// partials and adds a single page file defining the "content" block.
type Store struct {
	sets map[string]*template.Template
}

// NewStore parses the layout and partials once, then clones them per page template.
func NewStore(fsys fs.FS, funcs template.FuncMap) (*Store, error) {
	root := template.New("_root").Funcs(funcs)
	for _, glob := range []string{layoutGlob, partialGlob} {
		matches, err := fs.Glob(fsys, glob)
		if err != nil {
			return nil, fmt.Errorf("render: glob %s: %w", glob, err)
		}
		if len(matches) == 0 {
			continue
		}
		if _, err := root.ParseFS(fsys, matches...); err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", glob, err)
		}
	}
	if root.Lookup(baseName) == nil {
		return nil, fmt.Errorf("render: layout %q not defined under %s", baseName, layoutGlob)
	}

	entries, err := fs.ReadDir(fsys, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("render: read %s: %w", pagesDir, err)
	}
	store := &Store{sets: make(map[string]*template.Template, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".tmpl" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		set, err := root.Clone()
		if err != nil {
			return nil, fmt.Errorf("render: clone layout for %s: %w", name, err)
		}
		if _, err := set.ParseFS(fsys, path.Join(pagesDir, entry.Name())); err != nil {
			return nil, fmt.Errorf("render: parse page %s: %w", name, err)
		}
		store.sets[name] = set.Lookup(baseName)
	}
	return store, nil
}

// Lookup returns the executable layout for the named page template.
func (s *Store) Lookup(name string) (*template.Template, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.sets[name]
	return t, ok
}

// Names lists the page templates in lexical order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.sets))
	for name := range s.sets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
