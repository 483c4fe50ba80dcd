package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:bundle
var bundle embed.FS

// Bundled returns the template set compiled into the binary, rooted at the
// template root.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundle, "bundle")
	if err != nil {
		panic(err)
	}
	return sub
}
