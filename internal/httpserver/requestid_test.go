package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMintsULID(t *testing.T) {
	t.Parallel()

	var seen string
	h := requestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := ulid.ParseStrict(seen)
	require.NoError(t, err)
	require.Equal(t, seen, rec.Header().Get(chimw.RequestIDHeader))
}

func TestRequestIDReusesWellFormedHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"edge-abc_123.4":        true,
		"":                      false,
		"has space":             false,
		"<script>":              false,
		strings.Repeat("a", 65): false,
		strings.Repeat("a", 64): true,
	}
	for id, reuse := range cases {
		var seen string
		h := requestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = chimw.GetReqID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(chimw.RequestIDHeader, id)
		h.ServeHTTP(httptest.NewRecorder(), req)
		require.Equal(t, reuse, seen == id, "id=%q", id)
	}
}
