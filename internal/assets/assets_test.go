package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"evalpoint.ai/web/public"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"css/style.css": {Data: []byte("body{margin:0}")},
		"js/main.js":    {Data: []byte("console.log(1)")},
	}
}

func serve(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerServesFilesWithCacheHeaders(t *testing.T) {
	t.Parallel()

	h, err := Handler(testFS())
	require.NoError(t, err)

	rec := serve(t, h, "/css/style.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{margin:0}", rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	require.Equal(t, cacheControlImmutable, rec.Header().Get("Cache-Control"))
	require.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))

	sum := sha256.Sum256([]byte("body{margin:0}"))
	require.Equal(t, `W/"`+hex.EncodeToString(sum[:])+`"`, rec.Header().Get("ETag"))

	rec = serve(t, h, "/js/main.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "javascript")
}

func TestHandlerHonoursIfNoneMatch(t *testing.T) {
	t.Parallel()

	h, err := Handler(testFS())
	require.NoError(t, err)

	etag := serve(t, h, "/css/style.css", nil).Header().Get("ETag")
	rec := serve(t, h, "/css/style.css", http.Header{"If-None-Match": {`"other", ` + etag}})
	require.Equal(t, http.StatusNotModified, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = serve(t, h, "/css/style.css", http.Header{"If-None-Match": {`"stale"`}})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerRejectsMissingAndDirectories(t *testing.T) {
	t.Parallel()

	h, err := Handler(testFS())
	require.NoError(t, err)

	for _, path := range []string{"/missing.css", "/css/", "/css", "/", "/css/../js/main.js"} {
		require.Equal(t, http.StatusNotFound, serve(t, h, path, nil).Code, path)
	}
}

func TestHandlerCustomNotFoundAndNoCache(t *testing.T) {
	t.Parallel()

	h, err := Handler(testFS(), WithNoCache(), WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("custom"))
	})))
	require.NoError(t, err)

	require.Equal(t, cacheControlNoCache, serve(t, h, "/js/main.js", nil).Header().Get("Cache-Control"))
	rec := serve(t, h, "/nope.js", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "custom", rec.Body.String())
}

func TestEmbeddedStaticTree(t *testing.T) {
	t.Parallel()

	fsys, err := public.StaticFS()
	require.NoError(t, err)
	h, err := Handler(fsys)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, serve(t, h, "/css/style.css", nil).Code)
	require.Equal(t, http.StatusOK, serve(t, h, "/js/main.js", nil).Code)
}
