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

// Package session provides durable conversation history keyed by session id.
// History is append-only; items are returned in insertion order. Each session
// id is an independent partition, so stores require no cross-session locking.
package session

import (
	"context"
	"time"
)

// Item is one entry in a session's ordered history. Data holds the
// JSON-encoded exchange item.
type Item struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID string    `gorm:"index;size:128" json:"session_id"`
	Role      string    `gorm:"size:32" json:"role"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists ordered history items keyed by session id.
type Store interface {
	// History returns the session's items in insertion order. A session with
	// no history yields an empty slice, not an error.
	History(ctx context.Context, sessionID string) ([]Item, error)

	// Append adds items to the end of the session's history.
	Append(ctx context.Context, sessionID string, items []Item) error
}

// Session binds one immutable session id to a Store. It is the handle passed
// into the task engine so history access never goes through ambient state.
type Session struct {
	id    string
	store Store
}

// New creates a session handle for the given id.
func New(id string, store Store) *Session {
	return &Session{id: id, store: store}
}

// ID returns the session id. The id never changes once assigned.
func (s *Session) ID() string { return s.id }

// Items returns the session's history in insertion order.
func (s *Session) Items(ctx context.Context) ([]Item, error) {
	return s.store.History(ctx, s.id)
}

// AppendItems appends items to the session's history.
func (s *Session) AppendItems(ctx context.Context, items ...Item) error {
	if len(items) == 0 {
		return nil
	}
	return s.store.Append(ctx, s.id, items)
}
