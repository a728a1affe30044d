// Package server runs an HTTP handler with timeouts, background system metrics
// and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/collections/pkg/logger"
	"github.com/okian/collections/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// Server owns one http.Server.
type Server struct {
	name    string
	srv     *http.Server
	logger  logger.Logger
	started chan net.Addr
}

// New creates a server for handler listening on addr.
func New(name, addr string, handler http.Handler, l logger.Logger) *Server {
	if l == nil {
		l = logger.Get()
	}
	return &Server{
		name: name,
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger:  l,
		started: make(chan net.Addr, 1),
	}
}

// Started receives the bound address once the listener is up.
func (s *Server) Started() <-chan net.Addr { return s.started }

// Run listens until ctx is cancelled, then shuts down gracefully.
// It returns the listen error, if any, or the shutdown error.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.started <- ln.Addr()

	go startSystemMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting HTTP server",
			logger.String("service", s.name),
			logger.String("addr", ln.Addr().String()),
		)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down server...", logger.String("service", s.name))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	s.logger.Info(ctx, "server stopped", logger.String("service", s.name))
	return nil
}

// startSystemMetricsUpdater refreshes system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
