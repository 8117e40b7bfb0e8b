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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMemoryStore_HistoryEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	items, err := store.History(context.Background(), "missing")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("History() = %d items, want 0", len(items))
	}
}

func TestMemoryStore_AppendAndHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	first := []Item{
		{Role: "user", Data: `{"content":"hello"}`},
		{Role: "assistant", Data: `{"content":"hi"}`},
	}
	if err := store.Append(ctx, "s1", first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, "s1", []Item{{Role: "user", Data: `{"content":"again"}`}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	items, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	want := []Item{
		{SessionID: "s1", Role: "user", Data: `{"content":"hello"}`},
		{SessionID: "s1", Role: "assistant", Data: `{"content":"hi"}`},
		{SessionID: "s1", Role: "user", Data: `{"content":"again"}`},
	}
	ignore := cmpopts.IgnoreFields(Item{}, "ID", "CreatedAt")
	if diff := cmp.Diff(want, items, ignore); diff != "" {
		t.Errorf("History() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_SessionsArePartitioned(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Append(ctx, "s1", []Item{{Role: "user", Data: "a"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, "s2", []Item{{Role: "user", Data: "b"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	items, err := store.History(ctx, "s2")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(items) != 1 || items[0].Data != "b" {
		t.Errorf("History(s2) = %+v, want only s2 items", items)
	}
}

func TestSession_Handle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	sess := New("s1", store)

	if sess.ID() != "s1" {
		t.Errorf("ID() = %q, want %q", sess.ID(), "s1")
	}

	if err := sess.AppendItems(ctx, Item{Role: "user", Data: "x"}); err != nil {
		t.Fatalf("AppendItems() error = %v", err)
	}
	// No-op append must not fail.
	if err := sess.AppendItems(ctx); err != nil {
		t.Fatalf("AppendItems() with no items error = %v", err)
	}

	items, err := sess.Items(ctx)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Items() = %d items, want 1", len(items))
	}
}
