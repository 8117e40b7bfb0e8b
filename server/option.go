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

package server

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/go-stf/stf"
)

// Option represents an option for configuring the [Server].
type Option func(*Server)

// WithAddr sets the listen address for the [Server].
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithEndpoint sets the extraction endpoint path for the [Server].
func WithEndpoint(endpoint string) Option {
	return func(s *Server) {
		s.endpoint = endpoint
	}
}

// WithLogger sets the [*slog.Logger] for the [Server].
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTracer sets the [trace.Tracer] the server spans requests with.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// WithModelDefaults sets the model configuration applied to requests that
// omit one.
func WithModelDefaults(defaults stf.ModelConfig) Option {
	return func(s *Server) {
		s.modelDefaults = defaults
	}
}

// WithAuthKey enables bearer-token authentication with the given HS256 key.
// An empty key leaves the endpoint open.
func WithAuthKey(key []byte) Option {
	return func(s *Server) {
		s.authKey = key
	}
}
