// Package assets serves the embedded static files with ETag and cache headers.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const (
	cacheControlImmutable = "public, max-age=604800, stale-while-revalidate=86400"
	cacheControlNoCache   = "no-cache"
)

// Option customises the asset handler.
type Option func(*options)

type options struct {
	noCache  bool
	notFound http.Handler
}

// WithNoCache forces clients to revalidate every asset, used while developing.
func WithNoCache() Option {
	return func(o *options) { o.noCache = true }
}

// WithNotFound sets the handler used for missing files and directories.
func WithNotFound(h http.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.notFound = h
		}
	}
}

// Handler serves files from fsys. Request paths are relative to the root of fsys,
// so callers mounting it under a prefix should strip the prefix first.
// Only regular files are served; directories and unknown paths get a 404.
func Handler(fsys fs.FS, opts ...Option) (http.Handler, error) {
	o := options{notFound: http.NotFoundHandler()}
	for _, opt := range opts {
		opt(&o)
	}

	// precompute ETags for every regular file, keyed by URL path
	etags := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		et, err := fileETag(fsys, p)
		if err != nil {
			return err
		}
		etags["/"+p] = et
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: index files: %w", err)
	}

	files := http.FileServer(http.FS(fsys))
	cacheControl := cacheControlImmutable
	if o.noCache {
		cacheControl = cacheControlNoCache
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		et, ok := etags[name]
		if !ok || name != r.URL.Path {
			o.notFound.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("ETag", et)
		if etagMatches(r.Header.Get("If-None-Match"), et) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		files.ServeHTTP(w, r)
	}), nil
}

func fileETag(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`, nil
}

func etagMatches(raw, etag string) bool {
	if raw == "" {
		return false
	}
	for _, candidate := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "*" || trimmed == etag {
			return true
		}
	}
	return false
}
