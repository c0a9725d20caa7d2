package render

import (
	"html/template"
	"time"

	"evalpoint.ai/web/internal/format"
	"evalpoint.ai/web/internal/seo"
)

// Funcs returns the template helpers available to layouts and pages.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// encoding/json escapes <, > and & so the payload is safe inside a script element
		"jsonld": func(v any) template.JS {
			return template.JS(seo.JSON(v))
		},
		"currency": format.FmtCurrency,
		"date":     format.FmtDate,
		"isoDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006-01-02")
		},
	}
}
