package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	api    *apiclient.Client
	router http.Handler
}

// New creates a new Server with a backend client built from cfg.
// The portal keeps no data of its own; every read and write goes to the API.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	api := apiclient.New(cfg.API.BaseURL, logger.Named("api"), apiclient.WithTimeout(cfg.API.Timeout))
	logger.Info("Backend API configured",
		zap.String("base_url", api.BaseURL()),
		zap.Duration("timeout", cfg.API.Timeout))

	return &Server{
		cfg:    cfg,
		logger: logger,
		api:    api,
	}
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.cfg.ServerPort,
		Handler:           s.router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.cfg.API.Timeout + 15*time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

func (s *Server) API() *apiclient.Client {
	return s.api
}

func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
