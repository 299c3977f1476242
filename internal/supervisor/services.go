// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/storage"
)

// HTTPServer matches *http.Server's lifecycle methods, so tests can
// substitute a fake.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService adapts an HTTP server to suture's context-driven Serve.
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPService wraps an HTTP server as a supervised service.
func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. ListenAndServe blocks, so it runs in
// a goroutine; context cancellation triggers graceful Shutdown with a
// fresh deadline, since the original context is already canceled.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *HTTPService) String() string { return "http-server" }

// EventRouterRunner matches events.Router's blocking run method.
type EventRouterRunner interface {
	Run(ctx context.Context) error
}

// EventRouterService runs the interaction event router under
// supervision.
type EventRouterService struct {
	router EventRouterRunner
}

// NewEventRouterService wraps the event router as a supervised service.
func NewEventRouterService(router EventRouterRunner) *EventRouterService {
	return &EventRouterService{router: router}
}

// Serve implements suture.Service. Router.Run blocks until the context
// is canceled.
func (s *EventRouterService) Serve(ctx context.Context) error {
	if err := s.router.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("event router failed: %w", err)
	}
	return ctx.Err()
}

func (s *EventRouterService) String() string { return "event-router" }

// BadgerGCService runs badger value-log garbage collection on a ticker.
type BadgerGCService struct {
	db       *badger.DB
	interval time.Duration
	logger   zerolog.Logger
}

// NewBadgerGCService wraps the GC loop as a supervised service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerGCService(db *badger.DB, interval time.Duration, logger zerolog.Logger) *BadgerGCService {
	return &BadgerGCService{db: db, interval: interval, logger: logger}
}

// Serve implements suture.Service.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	storage.RunGC(ctx, s.db, s.interval, s.logger)
	return ctx.Err()
}

func (s *BadgerGCService) String() string { return "badger-gc" }
