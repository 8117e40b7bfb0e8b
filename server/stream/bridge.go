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

// Package stream implements the streaming execution bridge: the decoupling of
// task execution from response delivery through an invocation-scoped queue,
// the normalization of internal engine events, and the start/terminal
// protocol that guarantees every stream ends with a single done event.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-json-experiment/json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/engine"
	"github.com/go-stf/stf/server/event"
	"github.com/go-stf/stf/server/session"
)

// defaultFinalContent is emitted when the engine completes with empty output.
const defaultFinalContent = "Task execution completed"

// Bridge runs engine executions and exposes each one as an ordered stream of
// canonical events. For every invocation it owns the invocation queue and the
// producer goroutine exclusively; neither outlives the invocation.
type Bridge struct {
	engine    engine.Engine
	store     session.Store
	logger    *slog.Logger
	tracer    trace.Tracer
	queueSize int
	maxTurns  int
}

// Option configures a [Bridge].
type Option func(*Bridge)

// WithLogger sets the [*slog.Logger] for the bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithTracer sets the [trace.Tracer] for the bridge.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Bridge) {
		b.tracer = tracer
	}
}

// WithQueueSize sets the invocation queue capacity.
func WithQueueSize(size int) Option {
	return func(b *Bridge) {
		b.queueSize = size
	}
}

// WithMaxTurns caps the number of turns the engine may take per invocation.
func WithMaxTurns(n int) Option {
	return func(b *Bridge) {
		b.maxTurns = n
	}
}

// NewBridge creates a bridge over the given engine and session store.
func NewBridge(eng engine.Engine, store session.Store, opts ...Option) (*Bridge, error) {
	if eng == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if store == nil {
		return nil, errors.New("session store cannot be nil")
	}

	b := &Bridge{
		engine:    eng,
		store:     store,
		logger:    slog.Default(),
		tracer:    otel.GetTracerProvider().Tracer("github.com/go-stf/stf/server/stream"),
		queueSize: event.DefaultMaxQueueSize,
		maxTurns:  engine.DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.queueSize <= 0 {
		b.queueSize = event.DefaultMaxQueueSize
	}
	if b.maxTurns <= 0 {
		b.maxTurns = engine.DefaultMaxTurns
	}
	return b, nil
}

// Run starts one invocation and returns the consumer-facing event stream.
// The returned channel yields exactly one start event first and exactly one
// done event last, with every event stamped with sessionID. The channel is
// closed after done. If the caller stops reading, cancel ctx: the bridge
// cancels the engine and awaits its teardown before closing the channel.
func (b *Bridge) Run(ctx context.Context, req stf.ExtractRequest, sessionID string) <-chan stf.Event {
	out := make(chan stf.Event)
	go b.run(ctx, req, sessionID, out)
	return out
}

func (b *Bridge) run(ctx context.Context, req stf.ExtractRequest, sessionID string, out chan<- stf.Event) {
	defer close(out)

	ctx, span := b.tracer.Start(ctx, "stf.stream.run",
		trace.WithAttributes(
			attribute.String("stf.session_id", sessionID),
			attribute.String("stf.model", req.Model.ModelName),
		))
	defer span.End()

	sess := session.New(sessionID, b.store)
	b.checkContinuity(ctx, sess, req.Model.ModelName)

	// INIT -> RUNNING: the start event precedes everything, including engine
	// spawn.
	if !b.send(ctx, out, &stf.StartEvent{Status: "started"}, sessionID) {
		return
	}

	queue, err := event.NewQueue(b.queueSize)
	if err != nil {
		// Unreachable with a validated queue size; fail the stream rather
		// than hang.
		b.send(ctx, out, &stf.ErrorEvent{Message: err.Error()}, sessionID)
		b.send(ctx, out, &stf.DoneEvent{}, sessionID)
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	norm := &Normalizer{}
	var (
		finalOutput string
		runErr      error
	)

	// The producer task. It owns the enqueue side of the invocation queue and
	// closes it on the way out, success or failure. No failure escapes this
	// goroutine.
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		defer queue.Close()
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("engine panic: %v", r)
			}
		}()

		finalOutput, runErr = b.engine.Execute(runCtx, engine.Request{
			Input:   req.UserMessage,
			Session: sess,
			Config: engine.RunConfig{
				Model:    req.Model,
				MaxTurns: b.maxTurns,
			},
		}, func(ctx context.Context, ev engine.Event) error {
			ce, ok := norm.Normalize(ev)
			if !ok {
				b.logger.DebugContext(ctx, "dropping internal event with no client signal",
					slog.String("session_id", sessionID))
				return nil
			}
			if tc, isToolCall := ce.(*stf.ToolCallEvent); isToolCall {
				b.logger.InfoContext(ctx, "tool called",
					slog.String("session_id", sessionID),
					slog.Any("tool", tc.Tool),
					slog.Int("tool_call_count", norm.ToolCalls()))
			}
			return queue.Enqueue(ctx, ce)
		})
	}()

	// RUNNING: drain the queue strictly in push order.
	for {
		ev, err := queue.Dequeue(ctx)
		if errors.Is(err, event.ErrQueueClosed) {
			break
		}
		if err != nil {
			// Consumer abandoned or caller context canceled.
			b.abandon(ctx, cancel, producerDone, sessionID)
			return
		}
		if !b.send(ctx, out, ev, sessionID) {
			b.abandon(ctx, cancel, producerDone, sessionID)
			return
		}
	}

	// The queue is closed and drained; await the producer so no concurrent
	// work outlives the invocation.
	<-producerDone

	if runErr != nil {
		// RUNNING -> FAILED.
		b.logger.ErrorContext(ctx, "engine execution failed",
			slog.String("session_id", sessionID),
			slog.String("error", runErr.Error()))
		b.send(ctx, out, &stf.ErrorEvent{Message: runErr.Error()}, sessionID)
	} else {
		// RUNNING -> COMPLETED.
		content := finalOutput
		if content == "" {
			content = defaultFinalContent
		}
		b.logger.InfoContext(ctx, "engine run completed",
			slog.String("session_id", sessionID),
			slog.Int("tool_calls", norm.ToolCalls()))
		if !b.send(ctx, out, &stf.FinalResponseEvent{Content: content}, sessionID) {
			return
		}
		if !b.send(ctx, out, &stf.CompletedEvent{ToolCalls: norm.ToolCalls()}, sessionID) {
			return
		}
		b.recordExchange(ctx, sess, req.UserMessage, finalOutput)
	}

	// {COMPLETED|FAILED} -> DONE.
	b.send(ctx, out, &stf.DoneEvent{}, sessionID)
}

// checkContinuity is the session continuity gate: resuming a session that
// already has history under a different task configuration than it was
// created with is unsupported. This is a soft diagnostic; execution proceeds
// regardless, and nothing is placed on the client-facing stream.
func (b *Bridge) checkContinuity(ctx context.Context, sess *session.Session, model string) {
	items, err := sess.Items(ctx)
	if err != nil {
		b.logger.WarnContext(ctx, "reading session history failed",
			slog.String("session_id", sess.ID()),
			slog.String("error", err.Error()))
		return
	}
	if len(items) > 0 {
		b.logger.WarnContext(ctx, "resuming session with existing history; switching task configuration mid-session is unsupported and may produce inconsistent behavior",
			slog.String("session_id", sess.ID()),
			slog.Int("items", len(items)),
			slog.String("model", model))
	}
}

// send stamps the session id onto ev and forwards it to the consumer.
// It returns false when the consumer is gone.
func (b *Bridge) send(ctx context.Context, out chan<- stf.Event, ev stf.Event, sessionID string) bool {
	ev.SetSessionID(sessionID)
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// abandon cancels the engine and awaits its teardown. Called when the
// consumer stops reading mid-stream; the execution task must never be left
// running unsupervised.
func (b *Bridge) abandon(ctx context.Context, cancel context.CancelFunc, producerDone <-chan struct{}, sessionID string) {
	cancel()
	<-producerDone
	b.logger.WarnContext(context.WithoutCancel(ctx), "consumer abandoned stream; engine execution canceled",
		slog.String("session_id", sessionID))
}

// historyMessage is the JSON shape persisted for each exchange item.
type historyMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// recordExchange appends the user message and the engine's final output to
// the session history. Persistence failures are logged, not surfaced: the
// stream already completed.
func (b *Bridge) recordExchange(ctx context.Context, sess *session.Session, input, output string) {
	items := make([]session.Item, 0, 2)
	for _, msg := range []historyMessage{
		{Type: "message", Role: "user", Content: input},
		{Type: "message", Role: "assistant", Content: output},
	} {
		data, err := json.Marshal(msg)
		if err != nil {
			b.logger.WarnContext(ctx, "encoding history item failed",
				slog.String("session_id", sess.ID()),
				slog.String("error", err.Error()))
			return
		}
		items = append(items, session.Item{Role: msg.Role, Data: string(data)})
	}
	if err := sess.AppendItems(ctx, items...); err != nil {
		b.logger.WarnContext(ctx, "persisting exchange failed",
			slog.String("session_id", sess.ID()),
			slog.String("error", err.Error()))
	}
}
