// Package web provides the embedded static assets for the public site,
// served at /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var StaticFS embed.FS

// Static returns the asset tree rooted at static/, so /static/css/site.css
// maps to css/site.css.
func Static() fs.FS {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
