// Package web provides the HTTP API for fastmatcher search sessions.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/matcher"
	"github.com/poiesic/fastmatcher/session"
	"github.com/poiesic/fastmatcher/sources"
)

// Context radius bounds accepted over the API.
const (
	MaxContextRadius = 10
)

// Server provides HTTP endpoints for starting and tracking searches.
type Server struct {
	echo     *echo.Echo
	sessions *session.Manager
	logger   *slog.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server on top of a session manager.
func NewServer(sessions *session.Manager, cfg *Config) (*Server, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session manager cannot be nil")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger := slog.Default()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check
	s.echo.GET("/health", s.handleHealth)

	api := s.echo.Group("/api")
	api.POST("/search", s.handleStartSearch)
	api.GET("/search/:id", s.handleStatus)
	api.GET("/search/:id/results", s.handleResults)
	api.POST("/search/:id/cancel", s.handleCancel)
}

// SearchRequest is the request body for POST /api/search.
type SearchRequest struct {
	Directory  string   `json:"directory"`
	Keywords   []string `json:"keywords"`
	Context    int      `json:"context"`
	BatchSize  int      `json:"batch_size"`
	IgnoreCase bool     `json:"ignore_case"`
}

// validate checks the request and normalizes keywords and batch size.
func (r *SearchRequest) validate() error {
	if r.Directory == "" {
		return fmt.Errorf("directory cannot be empty")
	}
	info, err := os.Stat(r.Directory)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", r.Directory)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", r.Directory)
	}
	if f, err := os.Open(r.Directory); err != nil {
		return fmt.Errorf("directory is not readable: %s", r.Directory)
	} else {
		f.Close()
	}

	cleaned := make([]string, 0, len(r.Keywords))
	for _, keyword := range r.Keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			cleaned = append(cleaned, keyword)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("keywords cannot be empty")
	}
	r.Keywords = cleaned

	if r.Context < 0 || r.Context > MaxContextRadius {
		return fmt.Errorf("context must be between 0 and %d", MaxContextRadius)
	}

	if r.BatchSize == 0 {
		r.BatchSize = sources.DefaultBatchSize
	}
	if r.BatchSize < sources.MinBatchSize || r.BatchSize > sources.MaxBatchSize {
		return fmt.Errorf("batch size must be between %d and %d",
			sources.MinBatchSize, sources.MaxBatchSize)
	}

	return nil
}

// StartSearchResponse is the response body for POST /api/search.
type StartSearchResponse struct {
	SearchID string `json:"search_id"`
	Status   string `json:"status"`
}

// StatusResponse is the response body for GET /api/search/:id.
type StatusResponse struct {
	SearchID  string  `json:"search_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Count     int     `json:"count"`
	Error     string  `json:"error,omitempty"`
}

// MatchResponse is one match record in a results response.
type MatchResponse struct {
	File     string   `json:"file"`
	LineNo   int      `json:"line_no"`
	Keywords []string `json:"keywords"`
	Lines    []string `json:"lines"`
}

// ResultsResponse is the response body for GET /api/search/:id/results.
type ResultsResponse struct {
	SearchID string          `json:"search_id"`
	Count    int             `json:"count"`
	Results  []MatchResponse `json:"results"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleStartSearch validates the request, enumerates the directory, and
// starts a background search.
func (s *Server) handleStartSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid search request", "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	srcs, err := sources.WalkDir(req.Directory)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := s.sessions.Start(c.Request().Context(), session.Request{
		Keywords:   req.Keywords,
		Radius:     req.Context,
		IgnoreCase: req.IgnoreCase,
		BatchSize:  req.BatchSize,
		Sources:    srcs,
	})
	if err != nil {
		if errors.Is(err, matcher.ErrNoPatterns) || errors.Is(err, matcher.ErrEmptyPattern) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		s.logger.Error("error starting search", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start search")
	}

	return c.JSON(http.StatusOK, StartSearchResponse{SearchID: id, Status: "started"})
}

// handleStatus reports a session's progress.
func (s *Server) handleStatus(c echo.Context) error {
	snapshot, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "search not found or expired")
	}

	progress := 1.0
	if snapshot.Total > 0 {
		progress = float64(snapshot.Processed) / float64(snapshot.Total)
	}

	return c.JSON(http.StatusOK, StatusResponse{
		SearchID:  snapshot.ID,
		Status:    string(snapshot.Status),
		Progress:  progress,
		Processed: snapshot.Processed,
		Total:     snapshot.Total,
		Count:     snapshot.Count,
		Error:     snapshot.Error,
	})
}

// handleResults returns the stored records of a completed search.
func (s *Server) handleResults(c echo.Context) error {
	id := c.Param("id")
	records, err := s.sessions.Results(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionRunning):
			return echo.NewHTTPError(http.StatusConflict, "search is still running")
		case errors.Is(err, session.ErrSessionNotFound),
			errors.Is(err, session.ErrSessionCancelled),
			errors.Is(err, session.ErrSessionFailed):
			return echo.NewHTTPError(http.StatusNotFound, "results not available")
		default:
			s.logger.Error("error loading results", "search", id, "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load results")
		}
	}

	results := make([]MatchResponse, len(records))
	for i, record := range records {
		results[i] = toMatchResponse(record)
	}
	return c.JSON(http.StatusOK, ResultsResponse{
		SearchID: id,
		Count:    len(results),
		Results:  results,
	})
}

// handleCancel requests cancellation of a running search.
func (s *Server) handleCancel(c echo.Context) error {
	if err := s.sessions.Cancel(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "search not found or expired")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

func toMatchResponse(record *core.MatchRecord) MatchResponse {
	return MatchResponse{
		File:     record.Source,
		LineNo:   record.LineNo,
		Keywords: record.Keywords,
		Lines:    record.Lines,
	}
}

// Start begins serving HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("http server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
