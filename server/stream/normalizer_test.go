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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/engine"
)

func strPtr(s string) *string { return &s }

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		event   engine.Event
		want    stf.Event
		dropped bool
	}{
		"reasoning delta": {
			event: engine.ReasoningDelta{Text: "thinking"},
			want:  &stf.ReasoningDeltaEvent{Content: "thinking"},
		},
		"reasoning done is dropped": {
			event:   engine.ReasoningDone{},
			dropped: true,
		},
		"named tool call": {
			event: engine.ToolCall{Name: "search", Arguments: map[string]any{"q": "nrf2"}},
			want:  &stf.ToolCallEvent{Tool: strPtr("search"), Arguments: map[string]any{"q": "nrf2"}},
		},
		"action tool call uses record type as tool name": {
			event: engine.ToolCall{ActionType: "computer_call", Action: map[string]any{"type": "click"}},
			want:  &stf.ToolCallEvent{Tool: strPtr("computer_call"), Arguments: map[string]any{"type": "click"}},
		},
		"code tool call synthesizes code_interpreter": {
			event: engine.ToolCall{Code: "print(1)"},
			want:  &stf.ToolCallEvent{Tool: strPtr("code_interpreter"), Arguments: "print(1)"},
		},
		"shapeless tool call degrades to null fields": {
			event: engine.ToolCall{},
			want:  &stf.ToolCallEvent{},
		},
		"string tool output": {
			event: engine.ToolOutput{Content: "3 results"},
			want:  &stf.ToolOutputEvent{Content: "3 results"},
		},
		"structured tool output is stringified": {
			event: engine.ToolOutput{Content: 42},
			want:  &stf.ToolOutputEvent{Content: "42"},
		},
		"nil tool output": {
			event: engine.ToolOutput{},
			want:  &stf.ToolOutputEvent{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			norm := &Normalizer{}
			got, ok := norm.Normalize(tt.event)
			if ok == tt.dropped {
				t.Fatalf("Normalize() ok = %v, want %v", ok, !tt.dropped)
			}
			if tt.dropped {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizer_ToolCallCounter(t *testing.T) {
	t.Parallel()

	norm := &Normalizer{}
	events := []engine.Event{
		engine.ReasoningDelta{Text: "a"},
		engine.ToolCall{Name: "search"},
		engine.ToolOutput{Content: "ok"},
		engine.ToolCall{Code: "x = 1"},
		engine.ToolCall{},
	}
	for _, ev := range events {
		norm.Normalize(ev)
	}

	if got := norm.ToolCalls(); got != 3 {
		t.Errorf("ToolCalls() = %d, want 3", got)
	}
}
