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

package session

import "fmt"

// StoreError wraps a failure of a store operation with its context.
type StoreError struct {
	Op        string
	SessionID string
	Err       error
}

// NewStoreError creates a StoreError for the given operation.
func NewStoreError(op, sessionID string, err error) *StoreError {
	return &StoreError{Op: op, SessionID: sessionID, Err: err}
}

// Error implements error.
func (e *StoreError) Error() string {
	return fmt.Sprintf("session store %s %q: %v", e.Op, e.SessionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error { return e.Err }
