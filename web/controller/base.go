// Package controller provides the HTTP handlers of todoapp: the JSON API for
// todos, admin, auth and user routes, and the server-rendered pages.
package controller

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/service"
	"github.com/todoapp/todoapp/web/session"
)

// BaseController gives handlers access to the request-scoped store and identity.
type BaseController struct{}

func (a *BaseController) store(c *gin.Context) *gorm.DB {
	return middleware.GetStore(c)
}

func (a *BaseController) identity(c *gin.Context) *model.Identity {
	return middleware.GetIdentity(c)
}

// pageSession resolves the browser session from the access_token cookie. On
// failure it has already redirected and the handler must return.
func (a *BaseController) pageSession(c *gin.Context) (*model.Identity, bool) {
	result := session.Resolve(service.NewAuthService(a.store(c)), session.AccessToken(c))
	if !result.OK() {
		result.Redirect.Follow(c)
		return nil, false
	}
	return result.Identity, true
}
