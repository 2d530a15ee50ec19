// Package web embeds the static frontend.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var indexFS embed.FS

//go:embed static
var staticFS embed.FS

// Index returns the rendered landing page bytes.
func Index() ([]byte, error) {
	return indexFS.ReadFile("index.html")
}

// Static returns the static asset tree rooted at its contents.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
