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

// Package handler exposes the streaming bridge over HTTP as a Server-Sent
// Events endpoint.
package handler

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/server/stream"
	"github.com/go-stf/stf/sse"
)

// SessionIDQueryParam is the query parameter naming the session.
const SessionIDQueryParam = "session-id"

// Extract handles one extraction request and streams canonical events back
// until the terminal done event.
type Extract struct {
	bridge        *stream.Bridge
	modelDefaults stf.ModelConfig
	logger        *slog.Logger
}

// NewExtract creates the extraction handler. Requests that omit a model
// configuration get modelDefaults applied; a zero value means the built-in
// defaults.
func NewExtract(bridge *stream.Bridge, modelDefaults stf.ModelConfig, logger *slog.Logger) *Extract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extract{bridge: bridge, modelDefaults: modelDefaults, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *Extract) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req stf.ExtractRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.ApplyDefaults(h.modelDefaults)

	sessionID := r.URL.Query().Get(SessionIDQueryParam)
	if sessionID == "" {
		sessionID = req.SessionID
	}
	if sessionID == "" {
		sessionID = newSessionID()
	}

	sw, err := sse.NewWriter(w)
	if err != nil {
		if errors.Is(err, sse.ErrStreamingUnsupported) {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sw.WriteHeader()

	events := h.bridge.Run(r.Context(), req, sessionID)

	// Drain the stream even after a write failure so the bridge observes the
	// consumer until teardown; context cancellation stops the engine.
	var writeErr error
	for ev := range events {
		if writeErr != nil {
			continue
		}
		if err := sw.WriteEvent(ev); err != nil {
			writeErr = err
			h.logger.InfoContext(r.Context(), "client disconnected mid-stream",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()))
		}
	}
}

// newSessionID generates a session id for requests that carry none.
func newSessionID() string {
	id := uuid.New()
	return "session_" + hex.EncodeToString(id[:])
}
