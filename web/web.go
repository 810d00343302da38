// Package web provides the HTTP server of the drivelog panel: routing,
// session store and lifecycle.
package web

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/Bayrii/drivelog/config"
	"github.com/Bayrii/drivelog/logger"
	"github.com/Bayrii/drivelog/util/common"
	"github.com/Bayrii/drivelog/util/random"
	"github.com/Bayrii/drivelog/web/controller"
	"github.com/Bayrii/drivelog/web/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
)

// Server is the drivelog web server with its controllers.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index      *controller.IndexController
	experience *controller.ExperienceController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and mounts the route
// groups.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = nil
		gin.DefaultErrorWriter = nil
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	// The session cookie is the only shared state between requests; the
	// backing store is in memory, so sessions (and their identifier maps)
	// do not survive a restart.
	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Seq(32)
	}
	store := memstore.NewStore([]byte(secret))
	engine.Use(sessions.Sessions("drivelog", store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.RedirectMiddleware("/"))

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)

	panel := engine.Group("/panel")
	s.experience = controller.NewExperienceController(panel)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen := config.GetListen()
	port := config.GetPort()
	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	logger.Infof("web server running HTTP on %s", listener.Addr())

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		defer common.Recover("web server")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server error:", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		if closeErr := s.listener.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
