package dbserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tokenforge/tokenforge-backend/internal/dbserver/config"
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/handlers"
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/metrics"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// Server is the database server: persistence API for payments and tokens,
// plus the deployment and burn endpoints.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
}

func NewServer(deps handlers.Dependencies) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(deps.Logger))
	router.Use(metricsMiddleware())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With"},
	}).Handler(router)

	srv := &Server{
		router: router,
		logger: deps.Logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", config.GetDBServerRPCPort()),
			Handler: corsHandler,
		},
	}
	srv.registerRoutes(handlers.NewHandler(deps))
	return srv
}

func (s *Server) registerRoutes(handler *handlers.Handler) {
	s.router.GET("/health", handler.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")

	api.POST("/payments", handler.CreatePayment)
	api.GET("/payments", handler.ListPayments)
	api.GET("/payments/schedulable", handler.GetSchedulablePayments)
	api.GET("/payments/:id", handler.GetPayment)
	api.PUT("/payments/:id", handler.UpdatePayment)
	api.POST("/payments/:id/pause", handler.PausePayment)
	api.POST("/payments/:id/resume", handler.ResumePayment)
	api.POST("/payments/:id/cancel", handler.CancelPayment)
	api.POST("/payments/:id/history", handler.AppendHistory)
	api.GET("/payments/:id/history", handler.GetHistory)

	api.POST("/tokens/deploy", handler.DeployToken)
	api.GET("/tokens", handler.ListTokens)
	api.GET("/tokens/:address", handler.GetToken)
	api.GET("/tokens/:address/metadata", handler.GetTokenMetadata)
	api.POST("/tokens/:address/burn", handler.BurnToken)

	api.GET("/fees/quote", handler.QuoteFees)
	api.GET("/wallet", handler.GetWalletState)
}

func (s *Server) Start() error {
	s.logger.Info("Starting database server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping database server")
	return s.httpServer.Shutdown(ctx)
}

func loggerMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("Request processed",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"latency", time.Since(start),
		)
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.TrackHTTPRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()))
		metrics.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
