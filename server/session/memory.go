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

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation. It is safe for
// concurrent use across sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string][]Item
	nextID uint
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]Item)}
}

// History returns a copy of the session's items in insertion order.
func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewStoreError("history", sessionID, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.items[sessionID]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

// Append adds items to the end of the session's history.
func (s *MemoryStore) Append(ctx context.Context, sessionID string, items []Item) error {
	if err := ctx.Err(); err != nil {
		return NewStoreError("append", sessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, item := range items {
		s.nextID++
		item.ID = s.nextID
		item.SessionID = sessionID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		s.items[sessionID] = append(s.items[sessionID], item)
	}
	return nil
}
