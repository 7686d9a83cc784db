// internal/server/server.go

// Package server serves the board over HTTP: the page, a small JSON API,
// the SSE stream and Prometheus metrics.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/statusboard/internal/config"
	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/sse"
)

//go:embed web/*.tmpl
var webFS embed.FS

// Deps are the collaborators behind the routes.
// Broker and Metrics are optional.
type Deps struct {
	Board     Board
	Broker    sse.Subscriber
	Metrics   http.Handler
	Heartbeat time.Duration
}

// Server is the HTTP server with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	log    logger.Logger
	cfg    config.ServerConfig
}

// New builds the router and server. Routes are ready to serve via Router
// before Start is called.
func New(cfg config.ServerConfig, deps Deps, log logger.Logger) (*Server, error) {
	if deps.Board == nil {
		return nil, errors.New("server: board required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.ParseFS(webFS, "web/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	router.SetHTMLTemplate(tmpl)

	registerRoutes(router, deps, log)

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         cfg.Address(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
		cfg: cfg,
	}, nil
}

func registerRoutes(r *gin.Engine, deps Deps, log logger.Logger) {
	h := &handlers{board: deps.Board}

	r.GET("/", h.index)
	r.GET("/health", health)

	api := r.Group("/api")
	api.GET("/state", h.state)
	api.POST("/refresh", h.refresh)
	api.PUT("/live", h.setLive)
	api.POST("/live/toggle", h.toggleLive)

	if deps.Broker != nil {
		opts := []sse.HandlerOption{sse.WithInitialEvents(initialEvents(deps.Board))}
		if deps.Heartbeat > 0 {
			opts = append(opts, sse.WithHeartbeat(deps.Heartbeat))
		}
		r.GET("/events", sse.Handler(deps.Broker, log, opts...))
	}

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}
}

// Router returns the underlying engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		logger.String("address", s.server.Addr),
		logger.Duration("read_timeout", s.server.ReadTimeout),
		logger.Duration("write_timeout", s.server.WriteTimeout),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync runs Start in a goroutine. The channel yields at most one
// error and is closed when the server stops.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

// Shutdown drains connections within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server",
		logger.Duration("timeout", s.cfg.ShutdownTimeout),
	)

	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}
