// Package web provides the todoapp HTTP server: routing, templates, static
// assets and background jobs.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/util/common"
	"github.com/todoapp/todoapp/util/random"
	"github.com/todoapp/todoapp/web/controller"
	"github.com/todoapp/todoapp/web/job"
	"github.com/todoapp/todoapp/web/middleware"
	"github.com/todoapp/todoapp/web/session"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

// Server is the todoapp web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	todo  *controller.TodoController
	admin *controller.AdminController
	auth  *controller.AuthController
	user  *controller.UserController
	page  *controller.PageController

	cron *cron.Cron
}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

func sessionSecret() []byte {
	secret := config.GetSessionSecret()
	if secret == "" {
		logger.Warning("TODO_SESSION_SECRET is not set, flash messages will not survive a restart")
		secret = random.Seq(32)
	}
	return []byte(secret)
}

// NewEngine builds the gin engine with every route and middleware.
func (s *Server) NewEngine() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(sessions.Sessions(session.StoreName, cookie.NewStore(sessionSecret())))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, err
	}
	engine.StaticFS("/assets", http.FS(assets))

	g := engine.Group("/")
	s.auth = controller.NewAuthController(g)
	s.todo = controller.NewTodoController(g)
	s.page = controller.NewPageController(g)
	s.admin = controller.NewAdminController(g)
	s.user = controller.NewUserController(g)

	engine.GET("/healthy", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Healthy"})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@every 1h", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithLocation(time.Local))
	s.cron.Start()

	engine, err := s.NewEngine()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts down the HTTP server and the cron scheduler.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
		if errors.Is(err2, net.ErrClosed) {
			err2 = nil
		}
	}
	return common.Combine(err1, err2)
}
