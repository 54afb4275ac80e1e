package httpapi

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
	"github.com/nguyentantai21042004/audio-summarizer/internal/metrics"
	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
)

// Server is the HTTP front end for uploads and summaries.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logger.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(cfg *config.Config, in intake.Intake, summ summarizer.Summarizer, log logger.Logger) *Server {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	log = log.With("component", "http")

	router := gin.New()
	router.Use(RequestID())
	router.Use(AccessLog(log))
	router.Use(Metrics())
	router.Use(Recovery(log))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	h := &handler{
		intake:          in,
		summarizer:      summ,
		logger:          log,
		maxBytes:        cfg.Upload.MaxBytes,
		previewMaxBytes: cfg.Upload.PreviewMaxBytes,
	}

	router.GET("/", h.index)
	router.POST("/summarize", h.summarizeForm)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/summaries", h.summarizeAPI)
		v1.POST("/summaries/docx", h.exportDocx)
	}

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		logger: log,
	}
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "HTTP server forced to shutdown: %v", err)
		return err
	}

	s.logger.Info(ctx, "HTTP server shutdown complete")
	return nil
}

// Router returns the gin engine (useful for testing).
func (s *Server) Router() *gin.Engine {
	return s.router
}
