package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/logger"
)

const storeKey = "store"

// StoreSession gives each request its own store session bound to the request
// context and releases it when the handler chain returns, panics included.
// onPanic writes the response after a recovered panic.
func StoreSession(onPanic gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := database.GetDB().Session(&gorm.Session{
			NewDB:   true,
			Context: c.Request.Context(),
		})
		c.Set(storeKey, db)
		defer func() {
			c.Set(storeKey, nil)
			if p := recover(); p != nil {
				logger.Errorf("%s %s panic: %v", c.Request.Method, c.Request.URL.Path, p)
				if !c.Writer.Written() {
					onPanic(c)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// GetStore returns the request's store session.
func GetStore(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(storeKey); ok {
		if db, ok := v.(*gorm.DB); ok && db != nil {
			return db
		}
	}
	panic("middleware: store session used outside StoreSession")
}
