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

package stream

import (
	"fmt"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/engine"
)

// codeInterpreterTool is the tool name synthesized for inline code execution
// records, which carry no tool name of their own.
const codeInterpreterTool = "code_interpreter"

// Normalizer maps internal engine events onto canonical events. It performs
// no I/O, never blocks, and never fails: an unrecognized shape degrades to
// null fields rather than aborting the stream.
//
// A Normalizer belongs to exactly one invocation. The tool-call counter is
// written only from the producer side; the bridge reads it after the producer
// has been awaited.
type Normalizer struct {
	toolCalls int
}

// Normalize converts one internal event. The second return value is false
// when the event carries no client-relevant signal and should be dropped.
func (n *Normalizer) Normalize(ev engine.Event) (stf.Event, bool) {
	switch ev := ev.(type) {
	case engine.ReasoningDelta:
		return &stf.ReasoningDeltaEvent{Content: ev.Text}, true

	case engine.ReasoningDone:
		return nil, false

	case engine.ToolCall:
		n.toolCalls++
		tool, args := resolveToolCall(ev)
		return &stf.ToolCallEvent{Tool: tool, Arguments: args}, true

	case engine.ToolOutput:
		return &stf.ToolOutputEvent{Content: stringify(ev.Content)}, true

	default:
		return nil, false
	}
}

// ToolCalls returns the number of tool calls normalized so far.
func (n *Normalizer) ToolCalls() int { return n.toolCalls }

// resolveToolCall picks the tool name and arguments from whichever shape the
// record carries: a named function call, a typed action, or inline code.
// A record with none of them yields null fields.
func resolveToolCall(ev engine.ToolCall) (*string, any) {
	switch {
	case ev.Name != "":
		name := ev.Name
		return &name, ev.Arguments
	case ev.ActionType != "":
		name := ev.ActionType
		return &name, ev.Action
	case ev.Code != "":
		name := codeInterpreterTool
		return &name, ev.Code
	default:
		return nil, nil
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
