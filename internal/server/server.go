// Package server exposes the validation pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/facturio/billpipe/internal/billing"
	"github.com/facturio/billpipe/internal/model"
	"github.com/facturio/billpipe/internal/pipeline"
)

// Config holds server configuration.
type Config struct {
	Address      string
	BillingURL   string
	BillingToken string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server is the HTTP API server.
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *pipeline.Pipeline
}

// NewServer creates the API server and its pipeline.
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	client := billing.NewClient(config.BillingURL, config.BillingToken)

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline.New(client),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.POST("/submit", s.handleSubmit)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleValidate runs only the local passes and reports the field
// errors without touching the remote service.
func (s *Server) handleValidate(c *gin.Context) {
	var record model.InvoiceRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not a valid invoice record"})
		return
	}

	if failure := s.pipeline.ValidateLocal(&record); failure != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Kind:   string(failure.Kind),
			Errors: failure.Fields,
		})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{Valid: true})
}

// handleSubmit runs the full pipeline against the configured service.
func (s *Server) handleSubmit(c *gin.Context) {
	var record model.InvoiceRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not a valid invoice record"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	result := s.pipeline.Submit(ctx, &record)
	switch result.State {
	case pipeline.StateSucceeded:
		c.JSON(http.StatusOK, SubmitResponse{State: string(result.State), Bill: result.Bill})
	case pipeline.StateValidationFailed, pipeline.StateRemoteRejected:
		c.JSON(http.StatusUnprocessableEntity, SubmitResponse{
			State:  string(result.State),
			Errors: result.FieldErrors,
		})
	default:
		c.JSON(http.StatusBadGateway, SubmitResponse{
			State:   string(result.State),
			Message: result.Message,
		})
	}
}
