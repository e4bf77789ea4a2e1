// Package web embeds the HTML templates served by the site so the
// binary and the tests work regardless of the working directory.
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates
var embedded embed.FS

// Templates parses every embedded HTML template.
func Templates() *template.Template {
	templates, err := template.ParseFS(embedded, "templates/*.html")
	if err != nil {
		panic(fmt.Errorf("web: parse templates: %w", err))
	}
	return templates
}
