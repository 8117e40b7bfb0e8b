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

package engine

// Event is the tagged union of internal events an engine produces during a
// run. Each variant is created directly at its origin inside the engine, so
// the normalizer never has to guess at record shapes. Events are consumed
// exactly once.
type Event interface {
	isEvent()
}

// ReasoningDelta is an incremental chunk of reasoning summary text.
type ReasoningDelta struct {
	Text string
}

// ReasoningDone marks the end of a reasoning block. It carries no
// client-relevant signal and is dropped during normalization.
type ReasoningDone struct{}

// ToolCall reports a tool invocation. Exactly one of the three shapes is
// populated, mirroring the record variants the underlying runtime produces:
// a named function call (Name/Arguments), a typed action (ActionType/Action),
// or an inline code execution (Code). A ToolCall with none of them set is
// still delivered to clients, with null tool and arguments.
type ToolCall struct {
	Name       string
	Arguments  any
	ActionType string
	Action     any
	Code       string
}

// ToolOutput carries the result of a tool invocation.
type ToolOutput struct {
	Content any
}

func (ReasoningDelta) isEvent() {}
func (ReasoningDone) isEvent()  {}
func (ToolCall) isEvent()       {}
func (ToolOutput) isEvent()     {}
