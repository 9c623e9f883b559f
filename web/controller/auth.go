package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/web/entity"
	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/service"
	"github.com/todoapp/todoapp/web/session"
)

// AuthController handles registration, token issuance and the login pages.
type AuthController struct {
	BaseController
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/auth")

	g.GET("/login-page", a.loginPage)
	g.GET("/register-page", a.registerPage)
	g.GET("/logout", a.logout)

	api := g.Group("")
	api.Use(middleware.StoreSession(apiPanic))
	api.POST("/", a.register)
	api.POST("/token", a.token)
}

func (a *AuthController) loginPage(c *gin.Context) {
	html(c, "login.html", "Login", gin.H{"flashes": session.Flashes(c)})
}

func (a *AuthController) registerPage(c *gin.Context) {
	html(c, "register.html", "Register", nil)
}

func (a *AuthController) logout(c *gin.Context) {
	session.ClearAccessToken(c)
	c.Redirect(http.StatusFound, session.LoginPage)
}

func (a *AuthController) register(c *gin.Context) {
	var draft service.UserDraft
	if err := c.ShouldBind(&draft); err != nil {
		bindError(c, err)
		return
	}
	user, err := service.NewUserService(a.store(c)).Register(&draft, model.RoleUser)
	if err != nil {
		jsonError(c, err)
		return
	}
	logger.Infof("registered user %q", user.Username)
	c.JSON(http.StatusCreated, user)
}

func (a *AuthController) token(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	token, user, err := service.NewAuthService(a.store(c)).Authenticate(form.Username, form.Password)
	if err != nil {
		logger.Warningf("failed login for %q from %s", form.Username, c.ClientIP())
		jsonError(c, err)
		return
	}
	logger.Infof("%s logged in from %s", user.Username, c.ClientIP())
	session.SetAccessToken(c, token, int(config.GetTokenTTL().Seconds()))
	c.JSON(http.StatusOK, entity.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
