package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownGrace = 5 * time.Second

// GracefulShutdown waits for SIGINT or SIGTERM, gives in-flight page loads
// shutdownGrace to finish, then signals done.
func GracefulShutdown(srv *http.Server, logger *zap.Logger, done chan<- bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("Shutting down gracefully, press Ctrl+C again to force", zap.Duration("grace", shutdownGrace))

	// a second signal kills the process
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting", zap.String("addr", srv.Addr))
	done <- true
}
