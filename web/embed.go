// Package web holds the dashboard's templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static
var content embed.FS

// TemplatePattern matches every page and partial template in Templates.
const TemplatePattern = "*.html"

// Templates returns the HTML templates rooted at their directory.
func Templates() fs.FS {
	return mustSub("templates")
}

// Static returns the assets served under /static/.
func Static() fs.FS {
	return mustSub("static")
}

// mustSub panics only if the embed pattern above is changed without
// updating the directory names here.
func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
