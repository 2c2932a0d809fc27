// Package api serves the journal and its analytics as JSON over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/journal"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Addr string
	Book *journal.Book
	// Now is the dashboard clock. Defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	addr   string
	book   *journal.Book
	now    func() time.Time
	router *gin.Engine
	log    *slog.Logger
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Book == nil {
		return nil, errors.New("api: book is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		addr:   cfg.Addr,
		book:   cfg.Book,
		now:    cfg.Now,
		router: router,
		log:    logger.With("component", "api"),
	}
	router.Use(s.requestLog)
	s.registerRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	api.GET("/trades", s.handleListTrades)
	api.POST("/trades", s.handleAddTrade)
	api.GET("/trades/:id", s.handleGetTrade)
	api.PUT("/trades/:id", s.handleEditTrade)
	api.DELETE("/trades/:id", s.handleDeleteTrade)

	api.GET("/backtest", s.handleBacktest)
	api.GET("/calendar", s.handleCalendar)
	api.GET("/calendar/export", s.handleCalendarExport)
	api.GET("/days/:day", s.handleDay)
	api.GET("/dashboard", s.handleDashboard)

	api.GET("/instruments", s.handleInstruments)
	api.POST("/risk/size", s.handlePositionSize)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"elapsed", time.Since(start),
	)
}
