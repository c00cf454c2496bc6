// Package server wraps net/http with graceful shutdown.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-pathmetrics/pkg/logging"
)

// GracefulServer wraps an HTTP server with graceful shutdown capabilities.
type GracefulServer struct {
	server       *http.Server
	logger       logging.Logger
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// NewGracefulServer creates a new graceful HTTP server.
func NewGracefulServer(addr string, handler http.Handler) *GracefulServer {
	return &GracefulServer{
		server: &http.Server{
			Addr:           addr,
			Handler:        handler,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		logger:     logging.DefaultLogger().With(logging.Component("server")),
		shutdownCh: make(chan struct{}),
	}
}

// Start runs the server and blocks until shutdown. SIGINT and SIGTERM
// trigger a graceful drain before the process exits.
func (gs *GracefulServer) Start() error {
	go gs.handleSignals()

	gs.logger.Info("starting HTTP server", logging.String("addr", gs.server.Addr))
	if err := gs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown initiates a graceful shutdown. Safe to call more than once;
// only the first call drains the server.
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	var err error
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.logger.Info("initiating graceful shutdown", logging.Duration("timeout", timeout))

		if shutdownErr := gs.server.Shutdown(ctx); shutdownErr != nil {
			err = shutdownErr
			gs.logger.Error("shutdown failed", logging.Error(shutdownErr))
		} else {
			gs.logger.Info("server shutdown complete")
		}
	})
	return err
}

// handleSignals listens for termination signals and drains the server.
func (gs *GracefulServer) handleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	gs.logger.Info("received signal, starting graceful shutdown", logging.String("signal", sig.String()))
	if err := gs.Shutdown(30 * time.Second); err != nil {
		gs.logger.Error("shutdown error", logging.Error(err))
		os.Exit(1)
	}
	os.Exit(0)
}

// IsShuttingDown returns true if shutdown has been initiated.
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownChannel returns a channel that closes when shutdown is initiated.
func (gs *GracefulServer) ShutdownChannel() <-chan struct{} {
	return gs.shutdownCh
}
