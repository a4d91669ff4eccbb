package render

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"board-web/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// LayoutTemplate is the entry template every page renders through
const LayoutTemplate = "layout"

// Page kinds understood by the layout
const (
	PageSection = "section"
	PagePost    = "post"
	PageError   = "error"
)

// Page is the data passed to the layout template
type Page struct {
	Page    string
	Title   string
	Sidebar view.SidebarPage
	Post    *view.PostPage
	Error   string
	Status  int
}

// FuncMap returns the functions available to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"navIcon": func(name string) string {
			return "/static/icons/" + name + ".svg"
		},
		"loadingMessage": func() string { return view.LoadingMessage },
	}
}

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// Static returns the embedded static assets rooted at static/
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
