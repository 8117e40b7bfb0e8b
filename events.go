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

// Package stf provides the canonical event taxonomy and request types for the
// STF (sequence-to-function) streaming agent server. Internal engine events are
// normalized into these types before they reach a client; the SSE wire format
// is produced by the sse package.
package stf

// EventKind discriminates canonical events on the wire.
type EventKind string

// Canonical event kinds. Every stream starts with exactly one
// [EventKindStart] and ends with exactly one [EventKindDone].
const (
	EventKindStart          EventKind = "start"
	EventKindReasoningDelta EventKind = "reasoning_delta"
	EventKindToolCall       EventKind = "tool_call"
	EventKindToolOutput     EventKind = "tool_output"
	EventKindFinalResponse  EventKind = "final_response"
	EventKindCompleted      EventKind = "completed"
	EventKindError          EventKind = "error"
	EventKindDone           EventKind = "done"
)

// Event is a canonical, client-visible event produced during one bridge
// invocation. Every event carries the session id of the invocation it belongs
// to; the bridge stamps it before the event reaches a consumer.
type Event interface {
	// Kind returns the event kind for type discrimination.
	Kind() EventKind
	// SetSessionID stamps the owning session onto the event payload.
	SetSessionID(id string)
	// GetSessionID returns the session id stamped onto the event.
	GetSessionID() string
}

// Ensure all canonical events implement Event.
var (
	_ Event = (*StartEvent)(nil)
	_ Event = (*ReasoningDeltaEvent)(nil)
	_ Event = (*ToolCallEvent)(nil)
	_ Event = (*ToolOutputEvent)(nil)
	_ Event = (*FinalResponseEvent)(nil)
	_ Event = (*CompletedEvent)(nil)
	_ Event = (*ErrorEvent)(nil)
	_ Event = (*DoneEvent)(nil)
)

// StartEvent is the first event of every stream.
type StartEvent struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*StartEvent) Kind() EventKind { return EventKindStart }

// SetSessionID implements [Event].
func (e *StartEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *StartEvent) GetSessionID() string { return e.SessionID }

// ReasoningDeltaEvent carries an incremental chunk of the engine's reasoning
// summary.
type ReasoningDeltaEvent struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*ReasoningDeltaEvent) Kind() EventKind { return EventKindReasoningDelta }

// SetSessionID implements [Event].
func (e *ReasoningDeltaEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *ReasoningDeltaEvent) GetSessionID() string { return e.SessionID }

// ToolCallEvent reports a tool invocation by the engine. Tool and Arguments
// are nil when the originating record exposed no recognizable shape; they
// marshal as JSON null rather than being omitted.
type ToolCallEvent struct {
	Tool      *string `json:"tool"`
	Arguments any     `json:"arguments"`
	SessionID string  `json:"session_id"`
}

// Kind implements [Event].
func (*ToolCallEvent) Kind() EventKind { return EventKindToolCall }

// SetSessionID implements [Event].
func (e *ToolCallEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *ToolCallEvent) GetSessionID() string { return e.SessionID }

// ToolOutputEvent carries the stringified output of a tool invocation.
type ToolOutputEvent struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*ToolOutputEvent) Kind() EventKind { return EventKindToolOutput }

// SetSessionID implements [Event].
func (e *ToolOutputEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *ToolOutputEvent) GetSessionID() string { return e.SessionID }

// FinalResponseEvent carries the engine's final output. It immediately
// precedes [CompletedEvent] on the success path.
type FinalResponseEvent struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*FinalResponseEvent) Kind() EventKind { return EventKindFinalResponse }

// SetSessionID implements [Event].
func (e *FinalResponseEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *FinalResponseEvent) GetSessionID() string { return e.SessionID }

// CompletedEvent reports successful completion and the number of tool calls
// made during the invocation.
type CompletedEvent struct {
	ToolCalls int    `json:"tool_calls"`
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*CompletedEvent) Kind() EventKind { return EventKindCompleted }

// SetSessionID implements [Event].
func (e *CompletedEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *CompletedEvent) GetSessionID() string { return e.SessionID }

// ErrorEvent reports an engine failure. It is always followed by
// [DoneEvent] and nothing else.
type ErrorEvent struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*ErrorEvent) Kind() EventKind { return EventKindError }

// SetSessionID implements [Event].
func (e *ErrorEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *ErrorEvent) GetSessionID() string { return e.SessionID }

// DoneEvent is the terminal event. No event follows it within an invocation.
type DoneEvent struct {
	SessionID string `json:"session_id"`
}

// Kind implements [Event].
func (*DoneEvent) Kind() EventKind { return EventKindDone }

// SetSessionID implements [Event].
func (e *DoneEvent) SetSessionID(id string) { e.SessionID = id }

// GetSessionID implements [Event].
func (e *DoneEvent) GetSessionID() string { return e.SessionID }
