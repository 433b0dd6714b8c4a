package mockserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/contentgen/llm/mock"
	"github.com/kbukum/contentgen/logger"
)

// Server serves the mock hot list and chat API.
type Server struct {
	cfg         Config
	engine      *gin.Engine
	httpServer  *http.Server
	listener    net.Listener
	log         *logger.Logger
	model       *mock.Generator
	topics      []HotItem
	hotRequests atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithTopics replaces the fixture topics.
func WithTopics(topics []HotItem) Option {
	return func(s *Server) { s.topics = topics }
}

// WithModel sets the mock model answering chat requests.
func WithModel(g *mock.Generator) Option {
	return func(s *Server) { s.model = g }
}

// New creates a server with routes registered. Nothing listens until Start.
func New(cfg Config, log *logger.Logger, opts ...Option) *Server {
	cfg.ApplyDefaults()
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		engine: gin.New(),
		log:    logger.OrDefault(log, "mockserver").WithComponent("mockserver"),
		model:  mock.New(),
		topics: DefaultTopics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(recovery(s.log), requestID(), requestLogger(s.log))
	s.engine.GET("/health", s.health)
	s.engine.GET("/weibo/hot", s.hotList)
	s.engine.POST("/api/chat", s.chat)
	s.engine.GET("/api/tags", s.tags)

	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler, for use with httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Model returns the generator answering chat requests.
func (s *Server) Model() *mock.Generator { return s.model }

// HotRequests returns how many hot list pages were served.
func (s *Server) HotRequests() int { return int(s.hotRequests.Load()) }

// Start binds the listener and serves in a goroutine. It returns once the
// port is bound, so URL is valid afterwards.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("mockserver: bind %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", map[string]interface{}{logger.FieldError: err.Error()})
		}
	}()

	s.log.Info("mock server started", map[string]interface{}{"addr": ln.Addr().String()})
	return nil
}

// URL returns the base URL of the running server, or "" before Start.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Stop shuts the server down with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mockserver: shutdown: %w", err)
	}
	s.log.Info("mock server stopped")
	return nil
}
