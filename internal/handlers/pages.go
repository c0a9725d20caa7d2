package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"evalpoint.ai/web/internal/observability"
	"evalpoint.ai/web/internal/pages"
	"evalpoint.ai/web/internal/requestctx"
)

// PageRenderer provides the rendered documents served by the page handlers.
type PageRenderer interface {
	Component(p pages.Page) (templ.Component, error)
	NotFound() templ.Component
	MethodNotAllowed() templ.Component
}

// Page returns a handler serving the pre-rendered document for p.
func Page(renderer PageRenderer, p pages.Page) (http.Handler, error) {
	component, err := renderer.Component(p)
	if err != nil {
		return nil, err
	}
	inner := templ.Handler(component)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		observability.RecordPageView(ctx, string(p.ID))
		requestctx.Logger(ctx).Debug("serving page", zap.String("page", string(p.ID)))
		inner.ServeHTTP(w, r)
	}), nil
}
