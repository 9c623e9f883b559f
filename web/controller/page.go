package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/service"
	"github.com/todoapp/todoapp/web/session"
)

const todoPage = "/todos/todo-page"

var priorities = []int{1, 2, 3, 4, 5}

// PageController renders the browser views. It never shows an error page:
// anything that goes wrong sends the browser back to the login page.
type PageController struct {
	BaseController
}

func NewPageController(g *gin.RouterGroup) *PageController {
	a := &PageController{}
	a.initRouter(g)
	return a
}

func (a *PageController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)

	pages := g.Group("/todos")
	pages.Use(middleware.StoreSession(pagePanic))

	pages.GET("/todo-page", a.todoPage)
	pages.GET("/add-todo-page", a.addTodoPage)
	pages.GET("/edit-todo-page/:id", a.editTodoPage)
}

// pagePanic sends the browser to the login page after a handler panic.
func pagePanic(c *gin.Context) {
	session.ClearAccessToken(c)
	c.Redirect(http.StatusFound, session.LoginPage)
}

// loginFallback logs err and sends the browser to the login page.
func loginFallback(c *gin.Context, err error) {
	logger.Warningf("render %s failed: %v", c.Request.URL.Path, err)
	(&session.Redirect{Location: session.LoginPage, ClearCookie: true}).Follow(c)
}

func (a *PageController) index(c *gin.Context) {
	c.Redirect(http.StatusFound, todoPage)
}

func (a *PageController) todoPage(c *gin.Context) {
	identity, ok := a.pageSession(c)
	if !ok {
		return
	}
	todos, err := service.NewTodoService(a.store(c)).ListMine(identity)
	if err != nil {
		loginFallback(c, err)
		return
	}
	html(c, "todo.html", "Todos", gin.H{"todos": todos, "user": identity})
}

func (a *PageController) addTodoPage(c *gin.Context) {
	identity, ok := a.pageSession(c)
	if !ok {
		return
	}
	html(c, "add_todo.html", "Add Todo", gin.H{"user": identity})
}

func (a *PageController) editTodoPage(c *gin.Context) {
	identity, ok := a.pageSession(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, todoPage)
		return
	}
	todo, err := service.NewTodoService(a.store(c)).GetOne(identity, id)
	if errors.Is(err, service.ErrNotFound) {
		c.Redirect(http.StatusFound, todoPage)
		return
	} else if err != nil {
		loginFallback(c, err)
		return
	}
	html(c, "edit_todo.html", "Edit Todo", gin.H{"todo": todo, "user": identity, "priorities": priorities})
}
