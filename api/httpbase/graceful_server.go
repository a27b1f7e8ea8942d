package httpbase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// GracefulServer wraps an HTTP server with signal-driven graceful shutdown.
type GracefulServer struct {
	server *http.Server
}

type GraceServerOpt struct {
	Port int
}

func NewGracefulServer(opt GraceServerOpt, handler http.Handler) *GracefulServer {
	return &GracefulServer{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", opt.Port),
			Handler: handler,
		},
	}
}

// Run starts the server and blocks until SIGINT or SIGTERM, then shuts down
// with a five second drain window for in-flight requests.
func (s *GracefulServer) Run() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", slog.Any("error", err))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("server failed to shutdown", slog.Any("error", err))
	}
	slog.Info("server stopped")
}
