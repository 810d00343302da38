package controller

import (
	"net/http"
	"text/template"

	"github.com/Bayrii/drivelog/config"
	"github.com/Bayrii/drivelog/logger"
	"github.com/Bayrii/drivelog/web/service"
	"github.com/Bayrii/drivelog/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// IndexController handles login, registration and logout.
type IndexController struct {
	BaseController

	userService service.UserService
}

// NewIndexController creates a new IndexController and initializes its
// routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/logout", a.logout)

	g.POST("/login", a.login)
	g.POST("/register", a.register)
}

// login verifies credentials and creates the browser session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}
	if form.Username == "" {
		pureJsonMsg(c, http.StatusOK, false, "username is required")
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "password is required")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	safeUser := template.HTMLEscapeString(form.Username)

	if user == nil {
		logger.Warningf("wrong credentials for username: \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, "wrong username or password")
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	session.SetLoginUser(c, user)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session: ", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", safeUser, getRemoteIp(c))
	jsonMsg(c, "login successful", nil)
}

// register creates a new account. The caller still logs in separately.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	user, err := a.userService.Register(form.Username, form.Password)
	if err != nil {
		jsonMsg(c, "registration failed", err)
		return
	}

	logger.Infof("new account registered: %s", user.Username)
	jsonMsg(c, "registration successful", nil)
}

// logout drops the session, which also discards every anonymized code the
// session has issued.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	session.ClearSession(c)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}
