// Package server exposes a gene-data catalog over an HTTP JSON API,
// with optional static hosting for a prebuilt frontend bundle.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inodb/modscope/internal/genedata"
)

// Options configures optional server behavior.
type Options struct {
	// StaticDir serves a prebuilt frontend bundle when non-empty.
	// Unmatched non-API routes fall back to its index.html.
	StaticDir string
	// DisableCORS drops the permissive CORS headers.
	DisableCORS bool
}

// Server serves a loaded catalog. The catalog is never mutated after
// construction, so handlers are safe to run concurrently.
type Server struct {
	catalog   *genedata.Catalog
	router    *gin.Engine
	logger    *zap.Logger
	staticDir string
}

// NewServer builds a server around a loaded catalog.
func NewServer(catalog *genedata.Catalog, opts Options) *Server {
	s := &Server{
		catalog:   catalog,
		logger:    zap.NewNop(),
		staticDir: opts.StaticDir,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	if !opts.DisableCORS {
		router.Use(corsMiddleware())
	}
	s.router = router
	s.setupRoutes()
	return s
}

// SetLogger replaces the no-op default logger.
func (s *Server) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Router returns the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/samples", s.handleSamples)
	api.GET("/genes", s.handleGenes)
	api.GET("/genes/:id", s.handleGene)
	api.GET("/scatter", s.handleScatter)

	if s.staticDir != "" {
		s.router.NoRoute(s.handleStatic)
	}
}

// handleStatic serves files from the configured bundle directory and
// falls back to index.html so client-side routes resolve after reload.
func (s *Server) handleStatic(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	path := filepath.Join(s.staticDir, filepath.Clean("/"+c.Request.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		c.File(path)
		return
	}
	c.File(filepath.Join(s.staticDir, "index.html"))
}

// Run serves on addr until the context is cancelled, then shuts down
// gracefully, draining in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", zap.String("addr", addr), zap.Int("samples", s.catalog.Len()))

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
