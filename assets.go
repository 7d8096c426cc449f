package formkit

import (
	"embed"
	"io/fs"
)

// DefaultStylesheet is the name of the bundled stylesheet within AssetsFS.
const DefaultStylesheet = "formkit.css"

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the bundled stylesheet so applications can serve it
// without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/formkit/",
//	  http.StripPrefix("/formkit/",
//	    http.FileServerFS(formkit.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
