// Package greeting remembers a visitor's name in the session and greets them,
// using redirect-after-POST so a refresh never resubmits the form.
package greeting

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialblog/flash"
	"socialblog/forms"
	"socialblog/views"
)

const (
	Path       = "/greet"
	sessionKey = "name"

	changedMessage = "Looks like you have changed your name!"
)

type GreetingModule struct {
	logger *slog.Logger
}

func NewGreetingModule() *GreetingModule {
	return &GreetingModule{logger: slog.Default()}
}

func (g *GreetingModule) RegisterRoutes(router *gin.Engine) {
	router.GET(Path, g.index)
	router.POST(Path, g.submit)
}

func (g *GreetingModule) index(c *gin.Context) {
	g.render(c, forms.NameInput{}, forms.FieldErrors{})
}

func (g *GreetingModule) submit(c *gin.Context) {
	var in forms.NameInput
	if err := c.ShouldBind(&in); err != nil {
		views.Error(c, http.StatusBadRequest, "Could not read the submitted form")
		return
	}
	in = in.Normalize()

	if fe := forms.ValidateName(in); !fe.Valid() {
		g.render(c, in, fe)
		return
	}

	previous, hadPrevious := flash.GetString(c, sessionKey)
	if hadPrevious && previous != in.Name {
		if err := flash.Add(c, changedMessage, flash.Info); err != nil {
			g.logger.Error("saving flash failed", "err", err)
		}
	}

	if !hadPrevious || previous != in.Name {
		if err := flash.SetString(c, sessionKey, in.Name); err != nil {
			g.logger.Error("saving session failed", "err", err)
		}
	}

	c.Redirect(http.StatusFound, Path)
}

// render always shows the name currently held in the session.
func (g *GreetingModule) render(c *gin.Context, in forms.NameInput, fe forms.FieldErrors) {
	name, _ := flash.GetString(c, sessionKey)
	views.Render(c, http.StatusOK, "greet.html", gin.H{
		"title":  "Greet",
		"name":   name,
		"form":   in,
		"errors": fe,
	})
}
