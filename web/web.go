// Package web bundles the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var static embed.FS

// Static returns the static asset tree rooted at its own directory.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
