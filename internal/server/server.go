// Package server runs the fasthttp listener until its context is cancelled.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"inheritance-engine/internal/config"
)

const shutdownTimeout = 10 * time.Second

// New builds a fasthttp server for cfg.
func New(cfg config.HTTPConfig, h fasthttp.RequestHandler) *fasthttp.Server {
	return &fasthttp.Server{
		Name:               "inheritance-engine",
		Handler:            h,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: cfg.MaxBodyBytes,
	}
}

// Run listens on addr and shuts srv down gracefully once ctx is done.
func Run(ctx context.Context, srv *fasthttp.Server, addr string, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		// Serve may not have registered ln yet.
		_ = ln.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
