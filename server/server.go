// Copyright 2025 The Go STF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package server assembles the streaming bridge, session store and HTTP
// boundary into a runnable server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/server/handler"
	"github.com/go-stf/stf/server/stream"
)

// DefaultEndpoint is the extraction endpoint path.
const DefaultEndpoint = "/stf/extract"

// Server serves the extraction stream over HTTP.
type Server struct {
	addr          string
	endpoint      string
	logger        *slog.Logger
	tracer        trace.Tracer
	bridge        *stream.Bridge
	modelDefaults stf.ModelConfig
	authKey       []byte

	httpServer *http.Server
}

// New creates a Server over the given bridge.
func New(bridge *stream.Bridge, opts ...Option) (*Server, error) {
	if bridge == nil {
		return nil, errors.New("bridge cannot be nil")
	}

	s := &Server{
		addr:          ":8080",
		endpoint:      DefaultEndpoint,
		logger:        slog.Default(),
		tracer:        otel.GetTracerProvider().Tracer("github.com/go-stf/stf/server"),
		bridge:        bridge,
		modelDefaults: stf.DefaultModelConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the fully assembled HTTP handler, including the middleware
// chain. Authentication guards the extraction endpoint only; /healthz stays
// open for liveness probes.
func (s *Server) Handler() http.Handler {
	var extract http.Handler = handler.NewExtract(s.bridge, s.modelDefaults, s.logger)
	if len(s.authKey) > 0 {
		extract = handler.Chain(extract, handler.BearerAuth(s.authKey, s.logger))
	}

	mux := http.NewServeMux()
	mux.Handle(s.endpoint, extract)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return handler.Chain(mux,
		handler.Recovery(s.logger),
		handler.Logging(s.logger),
		handler.Tracing(s.tracer),
	)
}

// Start begins serving and blocks until the server stops. There is no write
// timeout: the streaming connection stays open for the duration of a run.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.logger.InfoContext(ctx, "server listening",
		slog.String("addr", s.addr),
		slog.String("endpoint", s.endpoint))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
