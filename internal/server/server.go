// Package server exposes fact-check sessions as JSON view models over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ppiankov/factview/internal/model"
	"github.com/ppiankov/factview/internal/present"
	"github.com/ppiankov/factview/internal/session"
	"github.com/ppiankov/factview/internal/worker"
	"go.uber.org/zap"
)

// Server serves session-scoped views
type Server struct {
	engine  *gin.Engine
	store   *Store
	builder *present.Builder
	limiter *worker.Limiter // nil disables per-session limits
	logger  *zap.Logger
	addr    string

	// background evaluations outlive their request but not the server
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New wires routes, middleware and the session store
func New(cfg *model.Config, evaluator session.Evaluator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("server")

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		store:   NewStore(evaluator, cfg.Server.SessionTTL, logger),
		builder: present.NewBuilder(cfg.Citations.Cap),
		logger:  logger,
		addr:    cfg.Server.Addr,
		ctx:     ctx,
		cancel:  cancel,
	}

	if cfg.RateLimiting.RequestsPerSecond > 0 {
		s.limiter = worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		s.store.OnEvicted(s.limiter.Forget)
	}

	corsConfig := cors.Config{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(cors.New(corsConfig))
	s.attachRoutes(r)
	s.engine = r

	return s
}

func (s *Server) attachRoutes(r *gin.Engine) {
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.DELETE("/sessions/:id", s.deleteSession)
		api.POST("/sessions/:id/submissions", s.submit)
		api.GET("/sessions/:id/claims/:claim/citations", s.citations)
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Wait blocks until background evaluations have resolved
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight evaluations and waits for them
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
