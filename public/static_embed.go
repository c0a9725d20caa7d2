// Package public embeds the static assets served under /static.
package public

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var static embed.FS

// StaticFS returns the asset tree rooted at static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
