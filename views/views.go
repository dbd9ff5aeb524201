// Package views embeds the HTML templates and static assets.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"socialblog/flash"
	"socialblog/forms"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"now": func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Templates parses every page together with the shared layout partials.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}

func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Render draws a page, handing it any queued flash messages.
func Render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = forms.FieldErrors{}
	}
	data["flashes"] = flash.Drain(c)
	c.HTML(code, name, data)
}

// Error renders the shared error page.
func Error(c *gin.Context, code int, msg string) {
	Render(c, code, "error.html", gin.H{
		"title": http.StatusText(code),
		"error": msg,
	})
}
