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

import (
	"context"
	"fmt"
)

// Echo is a development engine that acknowledges the input without contacting
// a model. It emits a single reasoning delta and completes with an echo of the
// request, which makes it useful for wiring and smoke-testing the streaming
// path end to end.
type Echo struct{}

var _ Engine = (*Echo)(nil)

// Execute implements [Engine].
func (Echo) Execute(ctx context.Context, req Request, emit EmitFunc) (string, error) {
	if err := emit(ctx, ReasoningDelta{Text: "echoing request"}); err != nil {
		return "", err
	}
	return fmt.Sprintf("echo: %s", req.Input), nil
}
