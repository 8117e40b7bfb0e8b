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

// Package event provides the invocation channel: a bounded, ordered queue
// carrying canonical events from the engine-side producer to the
// consumer-facing generator of one bridge invocation. A queue is created when
// the bridge starts an invocation and discarded once the terminal event has
// been observed and the producer awaited; it is never shared across
// invocations or sessions.
package event

import (
	"context"
	"sync"

	"github.com/go-stf/stf"
)

// DefaultMaxQueueSize is the default maximum queue size.
const DefaultMaxQueueSize = 1024

// Queue is a bounded single-producer single-consumer event queue. With one
// producer and one consumer, dequeue order always equals enqueue order.
type Queue struct {
	events    chan stf.Event
	maxSize   int
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue creates a new queue with the specified maximum size.
// If maxSize is 0, DefaultMaxQueueSize is used.
func NewQueue(maxSize int) (*Queue, error) {
	if maxSize < 0 {
		return nil, ErrInvalidQueueSize
	}
	if maxSize == 0 {
		maxSize = DefaultMaxQueueSize
	}

	return &Queue{
		events:  make(chan stf.Event, maxSize),
		maxSize: maxSize,
		done:    make(chan struct{}),
	}, nil
}

// Enqueue adds an event to the queue, blocking while the queue is full.
// Returns ErrQueueClosed if the queue is closed.
func (q *Queue) Enqueue(ctx context.Context, ev stf.Event) error {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	if closed {
		return ErrQueueClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return ErrQueueClosed
	case q.events <- ev:
		return nil
	}
}

// Dequeue retrieves the next event, blocking until one is available, the
// context is canceled, or the queue is closed and drained. After Close,
// Dequeue keeps returning buffered events until the queue is empty and then
// returns ErrQueueClosed.
func (q *Queue) Dequeue(ctx context.Context) (stf.Event, error) {
	// Drain buffered events before honoring the close signal.
	select {
	case ev := <-q.events:
		return ev, nil
	default:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-q.events:
		return ev, nil
	case <-q.done:
		select {
		case ev := <-q.events:
			return ev, nil
		default:
			return nil, ErrQueueClosed
		}
	}
}

// Close closes the queue, preventing future enqueues. Buffered events remain
// dequeueable.
func (q *Queue) Close() error {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		defer q.mu.Unlock()

		q.closed = true
		close(q.done)
	})
	return nil
}

// IsClosed returns true if the queue is closed.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Size returns the current number of buffered events.
func (q *Queue) Size() int {
	return len(q.events)
}

// Capacity returns the maximum capacity of the queue.
func (q *Queue) Capacity() int {
	return q.maxSize
}
