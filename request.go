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

package stf

import "fmt"

// DefaultModelName is the model used when a request does not name one.
const DefaultModelName = "gpt-5-nano"

// ModelSettings tunes the reasoning behavior of the task engine's model.
type ModelSettings struct {
	ReasoningEffort  string `json:"reasoning_effort,omitempty"`
	ReasoningSummary string `json:"reasoning_summary,omitempty"`
	Verbosity        string `json:"verbosity,omitempty"`
	Truncation       string `json:"truncation,omitempty"`
}

// ModelConfig names a model together with its settings.
type ModelConfig struct {
	ModelName     string        `json:"model_name"`
	ModelSettings ModelSettings `json:"model_settings"`
}

// DefaultModelConfig returns the model configuration used when a request
// carries none.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		ModelName: DefaultModelName,
		ModelSettings: ModelSettings{
			ReasoningEffort:  "low",
			ReasoningSummary: "auto",
			Verbosity:        "low",
			Truncation:       "auto",
		},
	}
}

// ExtractRequest is the body of an extraction request. SessionID may also be
// supplied through the `session-id` query parameter, which takes precedence.
type ExtractRequest struct {
	UserMessage string      `json:"user_message"`
	SessionID   string      `json:"session_id,omitempty"`
	Model       ModelConfig `json:"stf_model,omitzero"`
}

// Validate ensures the request is usable.
func (r *ExtractRequest) Validate() error {
	if r.UserMessage == "" {
		return fmt.Errorf("user_message cannot be empty")
	}
	return nil
}

// ApplyDefaults fills in the model configuration when the request omits it,
// using the deployment-configured defaults. A zero defaults value falls back
// to [DefaultModelConfig].
func (r *ExtractRequest) ApplyDefaults(defaults ModelConfig) {
	if defaults.ModelName == "" {
		defaults = DefaultModelConfig()
	}
	if r.Model.ModelName == "" {
		r.Model = defaults
	}
}
