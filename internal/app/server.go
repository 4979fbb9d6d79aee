// Package app wires the insight service and data store administration into
// an HTTP server.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/moni-ai/moni-insight/pkg/config"
	"github.com/moni-ai/moni-insight/pkg/insight"
	"github.com/moni-ai/moni-insight/pkg/vertex/discovery"
)

// InsightService is the query surface the handlers expose. Satisfied by
// *insight.Service.
type InsightService interface {
	SearchDocuments(ctx context.Context, query string) (*insight.SearchResults, error)
	AnswerQuery(ctx context.Context, query, session string) (*insight.AnswerResult, error)
	GenerateInsight(ctx context.Context, prompt string) (string, error)
}

// DataStoreAdmin is the data store lifecycle surface. Satisfied by
// *discovery.Client.
type DataStoreAdmin interface {
	CreateDataStore(ctx context.Context, dataStoreID string, createAdvancedSiteSearch bool, store *discovery.DataStore) (*discovery.Operation, error)
	GetDataStore(ctx context.Context, dataStoreID string) (*discovery.DataStore, error)
	DeleteDataStore(ctx context.Context, dataStoreID string) (*discovery.Operation, error)
	GetOperation(ctx context.Context, name string) (*discovery.Operation, error)
	PollOperation(ctx context.Context, name string, opts *discovery.PollOptions) (*discovery.Operation, bool, error)
}

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	echo    *echo.Echo
	service InsightService
	admin   DataStoreAdmin
	verbose bool
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, service InsightService, admin DataStoreAdmin, verbose bool) *Server {
	e := echo.New()

	// Disable Echo's default logger and use custom logging
	e.Logger.SetOutput(io.Discard)
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(requestIDMiddleware())

	s := &Server{
		config:  cfg,
		echo:    e,
		service: service,
		admin:   admin,
		verbose: verbose,
	}

	if verbose {
		e.Use(s.loggingMiddleware())
	}

	s.setupRoutes()

	return s
}

// requestIDMiddleware assigns a request ID when the caller did not supply
// one, and echoes it back on the response.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// loggingMiddleware returns Echo middleware for request logging
func (s *Server) loggingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			log.Printf("Request: %s %s from %s", req.Method, req.URL.Path, req.RemoteAddr)
			return next(c)
		}
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/search", s.handleSearch)
	s.echo.POST("/answer", s.handleAnswer)
	s.echo.POST("/insight", s.handleInsight)
	s.echo.POST("/datastores", s.handleCreateDataStore)
	s.echo.GET("/datastores/:id", s.handleGetDataStore)
	s.echo.DELETE("/datastores/:id", s.handleDeleteDataStore)
	s.echo.GET("/operations/*", s.handleGetOperation)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start runs the server on the given port and blocks until it stops.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("[SERVER] Listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("[SERVER] Shutting down")
	return s.echo.Shutdown(ctx)
}
