package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"socialblog/email"
	"socialblog/flash"
	"socialblog/forms"
	"socialblog/models"
	"socialblog/store"
	"socialblog/views"
)

// rememberKey holds the email offered on the login form after "Remember Me".
const rememberKey = "remembered_email"

type AuthModule struct {
	users       store.UserStore
	credentials CredentialChecker
	mailer      email.Mailer
	postLimit   []gin.HandlerFunc
	logger      *slog.Logger
}

type Option func(*AuthModule)

// WithMailer sends a welcome email after each registration.
func WithMailer(m email.Mailer) Option {
	return func(a *AuthModule) { a.mailer = m }
}

// WithRateLimit guards the form submissions with the given middleware.
func WithRateLimit(h gin.HandlerFunc) Option {
	return func(a *AuthModule) { a.postLimit = append(a.postLimit, h) }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *AuthModule) { a.logger = l }
}

func NewAuthModule(users store.UserStore, credentials CredentialChecker, opts ...Option) *AuthModule {
	a := &AuthModule{
		users:       users,
		credentials: credentials,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/register", a.registerPage)
	router.POST("/register", a.limited(a.registerPost)...)
	router.GET("/login", a.loginPage)
	router.POST("/login", a.limited(a.loginPost)...)
}

func (a *AuthModule) limited(h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(a.postLimit)+1)
	chain = append(chain, a.postLimit...)
	return append(chain, h)
}

func (a *AuthModule) registerPage(c *gin.Context) {
	views.Render(c, http.StatusOK, "register.html", gin.H{
		"title": "Register",
		"form":  forms.RegistrationInput{},
	})
}

func (a *AuthModule) registerPost(c *gin.Context) {
	var in forms.RegistrationInput
	if err := c.ShouldBind(&in); err != nil {
		views.Error(c, http.StatusBadRequest, "Could not read the submitted form")
		return
	}
	in = in.Normalize()
	ctx := c.Request.Context()

	fe, err := forms.ValidateRegistration(ctx, in, a.users)
	if err != nil {
		a.logger.Error("registration lookup failed", "err", err)
		views.Error(c, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	if !fe.Valid() {
		a.renderRegister(c, in, fe)
		return
	}

	passwordHash, err := hashPassword(in.Password)
	if err != nil {
		a.logger.Error("hashing password failed", "err", err)
		views.Error(c, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
	}
	if err := a.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fe.Add("username", "That username or email is taken. Please choose a different one.")
			a.renderRegister(c, in, fe)
			return
		}
		a.logger.Error("creating user failed", "err", err)
		views.Error(c, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	a.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	if a.mailer != nil {
		if err := a.mailer.SendWelcome(user.Email, user.Username); err != nil {
			a.logger.Warn("welcome email not sent", "user_id", user.ID, "err", err)
		}
	}

	if err := flash.Add(c, fmt.Sprintf("Account created for %s! You are now able to log in", user.Username), flash.Success); err != nil {
		a.logger.Error("saving flash failed", "err", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// renderRegister re-displays the form with what was typed, minus passwords.
func (a *AuthModule) renderRegister(c *gin.Context, in forms.RegistrationInput, fe forms.FieldErrors) {
	in.Password = ""
	in.ConfirmPassword = ""
	views.Render(c, http.StatusOK, "register.html", gin.H{
		"title":  "Register",
		"form":   in,
		"errors": fe,
	})
}

func (a *AuthModule) loginPage(c *gin.Context) {
	remembered, _ := flash.GetString(c, rememberKey)
	views.Render(c, http.StatusOK, "login.html", gin.H{
		"title": "Login",
		"form":  forms.LoginInput{Email: remembered, Remember: remembered != ""},
	})
}

func (a *AuthModule) loginPost(c *gin.Context) {
	var in forms.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		views.Error(c, http.StatusBadRequest, "Could not read the submitted form")
		return
	}
	in = in.Normalize()

	if fe := forms.ValidateLogin(in); !fe.Valid() {
		a.renderLogin(c, in, fe)
		return
	}

	ok, err := a.credentials.Check(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		a.logger.Error("credential check failed", "err", err)
		views.Error(c, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	if !ok {
		if err := flash.Add(c, "Login Unsuccessful. Please check email and password", flash.Danger); err != nil {
			a.logger.Error("saving flash failed", "err", err)
		}
		a.renderLogin(c, in, forms.FieldErrors{})
		return
	}

	// staged here, saved together with the flash below
	session := sessions.Default(c)
	if in.Remember {
		session.Set(rememberKey, in.Email)
	} else {
		session.Delete(rememberKey)
	}
	if err := flash.Add(c, "You have been logged in!", flash.Success); err != nil {
		a.logger.Error("saving flash failed", "err", err)
	}
	c.Redirect(http.StatusFound, "/home")
}

func (a *AuthModule) renderLogin(c *gin.Context, in forms.LoginInput, fe forms.FieldErrors) {
	in.Password = ""
	views.Render(c, http.StatusOK, "login.html", gin.H{
		"title":  "Login",
		"form":   in,
		"errors": fe,
	})
}
