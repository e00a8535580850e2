package server

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem together
// with the shared layout partials.
func ParseTemplate(name string) (*template.Template, error) {
	tmpl := template.New(name)
	for _, partial := range []string{"partials/head.html", "partials/topbar.html", "partials/footer.html"} {
		content, err := fs.ReadFile(TemplateFilesFS(), partial)
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.Parse(string(content)); err != nil {
			return nil, err
		}
	}
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return tmpl.Parse(string(content))
}
