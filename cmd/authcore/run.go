// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"google.golang.org/grpc"

	"github.com/holomush/authcore/internal/config"
	"github.com/holomush/authcore/internal/observability"
	"github.com/holomush/authcore/internal/web"
)

// shutdownTimeout bounds graceful shutdown of each server.
const shutdownTimeout = 5 * time.Second

// serverSet is the group of servers a long-running command owns.
// grpcServer is optional; obs only listens when serveObs is set.
type serverSet struct {
	logger     *slog.Logger
	grpcServer *grpc.Server
	grpcLis    net.Listener
	httpServer *http.Server
	httpLis    net.Listener
	obs        *observability.Server
	serveObs   bool
}

// run serves until ctx is cancelled, a termination signal arrives or a
// server fails, then shuts everything down.
func (s *serverSet) run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.serveObs {
		obsErrCh, err := s.obs.Start()
		if err != nil {
			s.closeListeners()
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
	}

	errCh := make(chan error, 2)
	if s.grpcServer != nil {
		go func() {
			if err := s.grpcServer.Serve(s.grpcLis); err != nil {
				errCh <- oops.Code("GRPC_SERVE_FAILED").Wrap(err)
			}
		}()
		s.logger.Info("gRPC server listening", "addr", s.grpcLis.Addr().String())
	}
	go func() {
		if err := s.httpServer.Serve(s.httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- oops.Code("HTTP_SERVE_FAILED").Wrap(err)
		}
	}()
	s.logger.Info("HTTP API listening", "addr", s.httpLis.Addr().String())

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case runErr = <-errCh:
		s.logger.Error("server failed, shutting down", "error", runErr)
	}

	s.shutdown()
	return runErr
}

func (s *serverSet) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("error stopping HTTP server", "error", err)
	}
	if s.grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			s.grpcServer.Stop()
		}
	}
	if s.obs != nil {
		if err := s.obs.Stop(shutdownCtx); err != nil {
			s.logger.Warn("error stopping observability server", "error", err)
		}
	}
	s.logger.Info("shutdown complete")
}

func (s *serverSet) closeListeners() {
	for _, lis := range []net.Listener{s.grpcLis, s.httpLis} {
		if lis == nil {
			continue
		}
		if err := lis.Close(); err != nil {
			s.logger.Debug("error closing listener", "error", err)
		}
	}
}

// monitorServerErrors cancels ctx when a server reports an error.
// It exits when an error is received, the channel is closed or ctx is done.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}

// webConfig maps the HTTP section of cfg to the web package.
func webConfig(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) web.Config {
	return web.Config{
		Cookies: web.CookieOptions{
			Name:   cfg.HTTP.CookieName,
			Secure: cfg.HTTP.CookieSecure,
		},
		SessionTTL: cfg.Session.WebTTL.Std(),
		Logger:     logger,
		Metrics:    metrics,
	}
}

// listenAll opens the listeners for addrs, closing any already opened on
// failure.
func listenAll(listen func(network, address string) (net.Listener, error), addrs ...string) ([]net.Listener, error) {
	out := make([]net.Listener, 0, len(addrs))
	for _, addr := range addrs {
		lis, err := listen("tcp", addr)
		if err != nil {
			for _, opened := range out {
				_ = opened.Close()
			}
			return nil, oops.Code("LISTEN_FAILED").With("addr", addr).Wrap(err)
		}
		out = append(out, lis)
	}
	return out, nil
}
