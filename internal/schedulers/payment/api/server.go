package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/api/handlers"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// Server is the scheduler's small operational API: health and metrics.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
}

type Config struct {
	Port string
}

type Dependencies struct {
	Logger logging.Logger
}

func NewServer(cfg Config, deps Dependencies) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{
		router: router,
		logger: deps.Logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Port),
			Handler: router,
		},
	}

	statusHandler := handlers.NewStatusHandler(deps.Logger)
	metricsHandler := handlers.NewMetricsHandler(deps.Logger)
	router.GET("/status", statusHandler.Status)
	router.GET("/metrics", metricsHandler.Metrics)

	return srv
}

func (s *Server) Start() error {
	s.logger.Info("Starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	return s.httpServer.Shutdown(ctx)
}
