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

// Package engine defines the contract between the streaming bridge and the
// task engine executing an extraction run. The engine's reasoning and tool
// logic is opaque to the rest of the system; only its event-producing
// contract matters here.
package engine

import (
	"context"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/server/session"
)

// DefaultMaxTurns bounds the number of engine steps per run. The bound is
// owned by the engine, not the bridge.
const DefaultMaxTurns = 100

// RunConfig carries the per-run configuration for an engine execution.
type RunConfig struct {
	Model    stf.ModelConfig
	MaxTurns int
}

// Request is one engine execution request. Session is the explicit handle to
// the run's conversation history; engines must not reach for history through
// ambient state.
type Request struct {
	Input   string
	Session *session.Session
	Config  RunConfig
}

// EmitFunc delivers one internal event to the bridge. Emit blocks until the
// event is accepted or ctx is canceled; a non-nil error means the run should
// stop.
type EmitFunc func(ctx context.Context, ev Event) error

// Engine executes a task, emitting internal events along the way. Execute
// returns the final output on success. Cancellation of ctx must stop the run
// promptly.
type Engine interface {
	Execute(ctx context.Context, req Request, emit EmitFunc) (string, error)
}

// Func adapts a plain function to the Engine interface.
type Func func(ctx context.Context, req Request, emit EmitFunc) (string, error)

// Execute implements [Engine].
func (f Func) Execute(ctx context.Context, req Request, emit EmitFunc) (string, error) {
	return f(ctx, req, emit)
}
