package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/web/service"
	"github.com/todoapp/todoapp/web/session"
)

func setup(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("TODO_JWT_SECRET", "middleware-secret")
	t.Setenv("TODO_ADMIN_USERNAME", "")
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { _ = database.CloseDB() })
}

func internalError(c *gin.Context) {
	c.AbortWithStatus(http.StatusInternalServerError)
}

func newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(StoreSession(internalError), ResolveIdentity())
	engine.GET("/whoami", func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, identity.Username)
	})
	engine.GET("/boom", func(c *gin.Context) {
		panic("handler exploded")
	})
	return engine
}

func issue(t *testing.T) string {
	t.Helper()
	token, err := service.NewAuthService(database.GetDB()).IssueToken(&model.User{Id: 1, Username: "alice", Role: model.RoleUser})
	require.NoError(t, err)
	return token
}

func TestResolveIdentity(t *testing.T) {
	setup(t)
	engine := newEngine()
	token := issue(t)

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"no credential", "", "", "anonymous"},
		{"bearer header", "Bearer " + token, "", "alice"},
		{"lowercase scheme", "bearer " + token, "", "alice"},
		{"cookie", "", token, "alice"},
		{"invalid bearer", "Bearer nope", "", "anonymous"},
		{"header wins over cookie", "Bearer nope", token, "anonymous"},
		{"basic scheme falls back to cookie", "Basic Zm9vOmJhcg==", token, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: tt.cookie})
			}
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestStoreSessionRecoversPanics(t *testing.T) {
	setup(t)
	engine := newEngine()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStoreOutsideScopePanics(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Panics(t, func() { GetStore(c) })
}

func TestDomainValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(DomainValidatorMiddleware("todo.example.com"))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for host, want := range map[string]int{
		"todo.example.com":      http.StatusOK,
		"todo.example.com:8000": http.StatusOK,
		"evil.example.com":      http.StatusForbidden,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = host
		engine.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, host)
	}
}
