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

package sse

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-stf/stf"
)

// ErrStreamingUnsupported is returned when the ResponseWriter cannot flush.
var ErrStreamingUnsupported = errors.New("response writer does not support streaming")

// Writer streams canonical events to an HTTP response, one frame per event,
// flushing after each write so the connection delivers incrementally.
type Writer struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter wraps w for SSE output. It fails if w cannot flush.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	return &Writer{w: w, flusher: flusher}, nil
}

// WriteHeader sets the SSE response headers: incremental content type,
// caching disabled, connection kept open for the duration of the stream.
func (w *Writer) WriteHeader() {
	h := w.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // Disable Nginx buffering
	w.w.WriteHeader(http.StatusOK)
	w.flusher.Flush()
}

// WriteEvent frames ev and writes it to the client.
func (w *Writer) WriteEvent(ev stf.Event, opts ...Option) error {
	frame := JSONFrame(string(ev.Kind()), ev, opts...)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprint(w.w, frame); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}
