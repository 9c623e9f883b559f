package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/web/entity"
	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/service"
)

// UserController lets the caller read and edit their own account under /user.
type UserController struct {
	BaseController
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/user")
	g.Use(middleware.StoreSession(apiPanic), middleware.ResolveIdentity())

	g.GET("/", a.me)
	g.PUT("/password", a.changePassword)
	g.PUT("/phonenumber/:phone", a.changePhoneNumber)
}

func (a *UserController) me(c *gin.Context) {
	user, err := service.NewUserService(a.store(c)).Get(a.identity(c))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *UserController) changePassword(c *gin.Context) {
	if err := service.RequireIdentity(a.identity(c)); err != nil {
		jsonError(c, err)
		return
	}
	var req entity.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	err := service.NewUserService(a.store(c)).ChangePassword(a.identity(c), req.Password, req.NewPassword)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *UserController) changePhoneNumber(c *gin.Context) {
	var p entity.PhoneParam
	if err := c.ShouldBindUri(&p); err != nil {
		bindError(c, err)
		return
	}
	if err := service.NewUserService(a.store(c)).UpdatePhoneNumber(a.identity(c), p.Phone); err != nil {
		jsonError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
