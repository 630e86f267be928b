package handlers

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates
var templateFS embed.FS

// Templates parses the page templates embedded in the binary.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Static serves the stylesheet next to the templates.
func Static() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
