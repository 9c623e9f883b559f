package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/web/entity"
	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/service"
)

// AdminController serves the unrestricted todo API under /admin.
type AdminController struct {
	BaseController
}

func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin")
	g.Use(middleware.StoreSession(apiPanic), middleware.ResolveIdentity())

	g.GET("/todo", a.readAll)
	g.DELETE("/todo/:id", a.deleteTodo)
}

// fail writes err, answering a wrong role with 401 when the legacy mapping
// is enabled.
func (a *AdminController) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrForbidden) && config.IsAdminLegacy401() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Detail: service.ErrUnauthenticated.Error()})
		return
	}
	jsonError(c, err)
}

func (a *AdminController) readAll(c *gin.Context) {
	todos, err := service.NewAdminService(a.store(c)).ListAll(a.identity(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (a *AdminController) deleteTodo(c *gin.Context) {
	if err := service.RequireRole(a.identity(c), model.RoleAdmin); err != nil {
		a.fail(c, err)
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := service.NewAdminService(a.store(c)).DeleteAny(a.identity(c), id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
