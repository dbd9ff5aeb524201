package site

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"socialblog/views"
)

type SiteModule struct {
	posts  PostLister
	pages  []gin.HandlerFunc
	logger *slog.Logger
}

// markdown renderer for post bodies; raw HTML in a post is dropped
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

// NewSiteModule wires the listing and static pages. pageMiddleware runs in
// front of the static pages only.
func NewSiteModule(posts PostLister, pageMiddleware ...gin.HandlerFunc) *SiteModule {
	return &SiteModule{
		posts:  posts,
		pages:  pageMiddleware,
		logger: slog.Default(),
	}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.home)
	router.GET("/index", s.home)
	router.GET("/home", s.home)
	router.GET("/about", s.withPages(s.about)...)
	router.GET("/user/:name", s.withPages(s.user)...)
}

func (s *SiteModule) withPages(h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(s.pages)+1)
	chain = append(chain, s.pages...)
	return append(chain, h)
}

type renderedPost struct {
	Author     string
	Title      string
	Content    template.HTML
	DatePosted string
}

func (s *SiteModule) home(c *gin.Context) {
	posts, err := s.posts.ListPosts(c.Request.Context())
	if err != nil {
		s.logger.Error("listing posts failed", "err", err)
		views.Error(c, http.StatusInternalServerError, "Could not load posts")
		return
	}

	rendered := make([]renderedPost, 0, len(posts))
	for _, p := range posts {
		rendered = append(rendered, renderedPost{
			Author:     p.Author,
			Title:      p.Title,
			Content:    template.HTML(renderMarkdown(p.Content)),
			DatePosted: p.DatePosted,
		})
	}

	views.Render(c, http.StatusOK, "home.html", gin.H{
		"posts": rendered,
	})
}

func (s *SiteModule) about(c *gin.Context) {
	views.Render(c, http.StatusOK, "about.html", gin.H{
		"title": "About",
	})
}

func (s *SiteModule) user(c *gin.Context) {
	name := c.Param("name")
	views.Render(c, http.StatusOK, "user.html", gin.H{
		"title": name,
		"name":  name,
	})
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return template.HTMLEscapeString(content)
	}
	return buf.String()
}
