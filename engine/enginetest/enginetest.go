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

// Package enginetest provides engine implementations for tests.
package enginetest

import (
	"context"

	"github.com/go-stf/stf/engine"
)

// Scripted is an engine that replays a fixed sequence of internal events and
// then either returns Final or fails with Err.
type Scripted struct {
	Events []engine.Event
	Final  string
	Err    error
}

var _ engine.Engine = (*Scripted)(nil)

// Execute implements [engine.Engine].
func (s *Scripted) Execute(ctx context.Context, req engine.Request, emit engine.EmitFunc) (string, error) {
	for _, ev := range s.Events {
		if err := emit(ctx, ev); err != nil {
			return "", err
		}
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Final, nil
}

// Blocking is an engine that emits its events and then blocks until ctx is
// canceled. It records the cancellation so tests can assert the bridge tore
// the run down.
type Blocking struct {
	Events []engine.Event

	// Canceled is closed when ctx cancellation reached the engine.
	Canceled chan struct{}
}

var _ engine.Engine = (*Blocking)(nil)

// NewBlocking creates a Blocking engine.
func NewBlocking(events ...engine.Event) *Blocking {
	return &Blocking{Events: events, Canceled: make(chan struct{})}
}

// Execute implements [engine.Engine].
func (b *Blocking) Execute(ctx context.Context, req engine.Request, emit engine.EmitFunc) (string, error) {
	for _, ev := range b.Events {
		if err := emit(ctx, ev); err != nil {
			return "", err
		}
	}
	<-ctx.Done()
	close(b.Canceled)
	return "", ctx.Err()
}
