package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	"evalpoint.ai/web/internal/httpx"
)

// NotFound answers unmatched paths with the not-found page, or with a JSON
// envelope when the client prefers JSON.
func NotFound(renderer PageRenderer) http.HandlerFunc {
	return errorPage(renderer.NotFound(), httpx.NewError("not_found", "page not found", http.StatusNotFound))
}

// MethodNotAllowed rejects anything but GET and HEAD on known paths, with the
// same HTML or JSON choice as NotFound.
func MethodNotAllowed(renderer PageRenderer) http.HandlerFunc {
	reject := errorPage(renderer.MethodNotAllowed(), httpx.NewError("method_not_allowed", "method not allowed", http.StatusMethodNotAllowed))
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, HEAD")
		reject(w, r)
	}
}

func errorPage(component templ.Component, envelope httpx.Error) http.HandlerFunc {
	page := templ.Handler(component, templ.WithStatus(envelope.Status))
	return func(w http.ResponseWriter, r *http.Request) {
		if httpx.PrefersJSON(r) {
			httpx.WriteError(r.Context(), w, envelope)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		page.ServeHTTP(w, r)
	}
}
