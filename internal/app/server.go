package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long in-flight requests may finish after stop.
const DefaultShutdownTimeout = 30 * time.Second

// HTTPServer runs an http.Server as a Service.
type HTTPServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// NewHTTPServer wraps server. A nil logger is replaced by a no-op logger.
func NewHTTPServer(server *http.Server, logger *zap.Logger) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPServer{
		server:          server,
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          logger,
	}
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	closed := make(chan error, 1)

	go func() {
		s.logger.Info("starting server", zap.String("addr", s.server.Addr))
		closed <- s.server.ListenAndServe()
	}()

	select {
	case err := <-closed:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server forced to shutdown", zap.Error(err))
		}
		return ctx.Err()
	}
}
