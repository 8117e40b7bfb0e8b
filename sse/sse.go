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

// Package sse encodes canonical events into the Server-Sent Events wire
// format: an id line, an event line, a JSON data line, and a terminating
// blank line. Clients must parse the data payload by key; field order is not
// part of the contract.
package sse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

type options struct {
	eventID string
}

// Option configures frame formatting.
type Option func(*options)

// WithEventID supplies the frame identifier instead of generating one.
// Framing with a supplied identifier is idempotent.
func WithEventID(id string) Option {
	return func(o *options) {
		o.eventID = id
	}
}

// Format renders one SSE frame from an already-encoded data payload. A fresh
// random identifier is generated unless WithEventID is given.
func Format(event, data string, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.eventID == "" {
		o.eventID = uuid.NewString()
	}

	var b strings.Builder
	b.WriteString("id: ")
	b.WriteString(o.eventID)
	b.WriteString("\nevent: ")
	b.WriteString(event)
	b.WriteString("\ndata: ")
	b.WriteString(data)
	b.WriteString("\n\n")
	return b.String()
}

// JSONFrame JSON-encodes payload for the data line and renders the frame.
// A payload that cannot be marshaled falls back to its string form, encoded
// as a JSON string, rather than failing the stream.
func JSONFrame(event string, payload any, opts ...Option) string {
	data, err := sonic.ConfigDefault.MarshalToString(payload)
	if err != nil {
		data = strconv.Quote(fmt.Sprint(payload))
	}
	return Format(event, data, opts...)
}
