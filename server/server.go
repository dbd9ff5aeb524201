// Package server assembles the application: every dependency a handler needs
// is built here and passed in, with no package-level state.
package server

import (
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"socialblog/auth"
	"socialblog/cache"
	"socialblog/common"
	"socialblog/config"
	"socialblog/email"
	"socialblog/greeting"
	"socialblog/site"
	"socialblog/store"
	"socialblog/views"
)

type App struct {
	Config config.Config
	DB     *gorm.DB
	Logger *slog.Logger
	Users  store.UserStore
	Posts  store.PostStore
	Mailer email.Mailer
}

func NewApp(cfg config.Config, db *gorm.DB, logger *slog.Logger) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Logger: logger,
		Users:  store.NewUserStore(db),
		Posts:  store.NewPostStore(db),
	}
	if cfg.SMTP.Enabled() {
		app.Mailer = email.NewEmailService(cfg.SMTP)
	}
	return app
}

func (a *App) credentials() auth.CredentialChecker {
	if a.Config.AuthMode == config.AuthModeStore {
		return auth.NewStoreCredentials(a.Users)
	}
	a.Logger.Warn("login accepts only the fixed placeholder credential; set AUTH_MODE=store to check registered users")
	return auth.NewPlaceholderCredentials()
}

func (a *App) postLister() site.PostLister {
	if a.Config.PostsSource == config.PostsSourceDB {
		return site.NewStorePosts(a.Posts)
	}
	return site.DefaultStaticPosts()
}

// Router builds the gin engine with sessions, templates and every module.
func (a *App) Router() *gin.Engine {
	if a.Config.Debug {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), common.RequestID(), common.RequestLogger(a.Logger))

	sessionStore := cookie.NewStore([]byte(a.Config.SecretKey))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions(a.Config.SessionName, sessionStore))

	router.SetHTMLTemplate(views.MustTemplates())
	router.StaticFS("/static", views.StaticFS())

	limiter := common.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst)
	authOpts := []auth.Option{
		auth.WithRateLimit(limiter.Middleware()),
		auth.WithLogger(a.Logger),
	}
	if a.Mailer != nil {
		authOpts = append(authOpts, auth.WithMailer(a.Mailer))
	}

	auth.NewAuthModule(a.Users, a.credentials(), authOpts...).RegisterRoutes(router)
	site.NewSiteModule(a.postLister(), cache.ETag()).RegisterRoutes(router)
	greeting.NewGreetingModule().RegisterRoutes(router)

	return router
}
