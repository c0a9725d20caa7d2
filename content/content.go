// Package content embeds the Markdown copy for every page.
package content

import (
	"embed"
	"io/fs"
)

//go:embed pages/*.md
var pages embed.FS

// Dir is the directory within FS holding page copy.
const Dir = "pages"

// FS returns the embedded content tree.
func FS() fs.FS {
	return pages
}
