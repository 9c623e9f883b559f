package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/service"
)

// TodoController serves the owner-scoped todo API under /todos.
type TodoController struct {
	BaseController
}

func NewTodoController(g *gin.RouterGroup) *TodoController {
	a := &TodoController{}
	a.initRouter(g)
	return a
}

func (a *TodoController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/todos")
	g.Use(middleware.StoreSession(apiPanic), middleware.ResolveIdentity())

	g.GET("/", a.readAll)
	g.GET("/todo/:id", a.readTodo)
	g.POST("/todo", a.createTodo)
	g.PUT("/todo/:id", a.updateTodo)
	g.DELETE("/todo/:id", a.deleteTodo)
}

// authenticated rejects anonymous callers before any input is parsed.
func (a *TodoController) authenticated(c *gin.Context) bool {
	if err := service.RequireIdentity(a.identity(c)); err != nil {
		jsonError(c, err)
		return false
	}
	return true
}

func (a *TodoController) readAll(c *gin.Context) {
	todos, err := service.NewTodoService(a.store(c)).ListMine(a.identity(c))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (a *TodoController) readTodo(c *gin.Context) {
	if !a.authenticated(c) {
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	todo, err := service.NewTodoService(a.store(c)).GetOne(a.identity(c), id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (a *TodoController) createTodo(c *gin.Context) {
	if !a.authenticated(c) {
		return
	}
	var draft service.TodoDraft
	if err := c.ShouldBind(&draft); err != nil {
		bindError(c, err)
		return
	}
	todo, err := service.NewTodoService(a.store(c)).Create(a.identity(c), &draft)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (a *TodoController) updateTodo(c *gin.Context) {
	if !a.authenticated(c) {
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	var draft service.TodoDraft
	if err := c.ShouldBind(&draft); err != nil {
		bindError(c, err)
		return
	}
	if err := service.NewTodoService(a.store(c)).Update(a.identity(c), id, &draft); err != nil {
		jsonError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *TodoController) deleteTodo(c *gin.Context) {
	if !a.authenticated(c) {
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := service.NewTodoService(a.store(c)).Delete(a.identity(c), id); err != nil {
		jsonError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
