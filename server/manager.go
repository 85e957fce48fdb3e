// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/a2a-lite"
	"github.com/go-a2a/a2a-lite/server/task"
)

// TaskManager drives the task lifecycle. It mirrors the two supported RPC
// methods one to one.
type TaskManager interface {
	// OnSendTask creates or continues a task, invokes the responder, and
	// returns the completed task.
	OnSendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error)

	// OnGetTask returns the current state of a task, optionally trimming
	// its history.
	OnGetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error)
}

// AgentTaskManager is a [TaskManager] that answers every task with a single
// responder call.
type AgentTaskManager struct {
	store     task.Store
	responder Responder
	logger    *slog.Logger
	tracer    trace.Tracer
}

var _ TaskManager = (*AgentTaskManager)(nil)

// NewAgentTaskManager creates a new [AgentTaskManager] backed by the given
// store and responder.
func NewAgentTaskManager(store task.Store, responder Responder) *AgentTaskManager {
	return &AgentTaskManager{
		store:     store,
		responder: responder,
		logger:    slog.Default(),
		tracer:    otel.Tracer("github.com/go-a2a/a2a-lite/server"),
	}
}

// WithLogger sets the logger to use.
func (m *AgentTaskManager) WithLogger(logger *slog.Logger) *AgentTaskManager {
	m.logger = logger
	return m
}

// WithTracerProvider sets the tracer provider to use.
func (m *AgentTaskManager) WithTracerProvider(tp trace.TracerProvider) *AgentTaskManager {
	m.tracer = tp.Tracer("github.com/go-a2a/a2a-lite/server")
	return m
}

// OnSendTask implements [TaskManager].
//
// The responder runs outside the store's lock, so concurrent sends for the
// same task ID may complete out of order; the last writer determines the
// final state.
func (m *AgentTaskManager) OnSendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.OnSendTask",
		trace.WithAttributes(attribute.String("a2a.task_id", params.ID)),
	)
	defer span.End()

	seed := &a2a.Task{
		ID:        params.ID,
		SessionID: params.SessionID,
		Status: a2a.TaskStatus{
			State:     a2a.TaskStateSubmitted,
			Timestamp: time.Now().UTC(),
		},
		History: []a2a.Message{params.Message},
	}
	if _, err := m.store.Upsert(ctx, seed); err != nil {
		return nil, fmt.Errorf("upsert task %s: %w", params.ID, err)
	}

	// The query is the text of the message passed in this call, not
	// something re-derived from stored history.
	query := params.Message.Text()
	m.logger.InfoContext(ctx, "dispatching task to responder",
		slog.String("task_id", params.ID),
		slog.String("session_id", params.SessionID),
	)

	reply, respondErr := m.responder.Respond(ctx, query, params.SessionID)
	if respondErr != nil {
		m.logger.ErrorContext(ctx, "responder failed",
			slog.String("task_id", params.ID),
			slog.Any("error", respondErr),
		)
		if _, err := m.store.Update(ctx, params.ID, func(t *a2a.Task) error {
			msg := a2a.NewAgentTextMessage(respondErr.Error())
			t.Status = a2a.TaskStatus{
				State:     a2a.TaskStateFailed,
				Message:   &msg,
				Timestamp: time.Now().UTC(),
			}
			return nil
		}); err != nil {
			m.logger.ErrorContext(ctx, "recording task failure",
				slog.String("task_id", params.ID),
				slog.Any("error", err),
			)
		}
		return nil, fmt.Errorf("respond to task %s: %w", params.ID, respondErr)
	}

	completed, err := m.store.Update(ctx, params.ID, func(t *a2a.Task) error {
		t.Status = a2a.TaskStatus{
			State:     a2a.TaskStateCompleted,
			Timestamp: time.Now().UTC(),
		}
		t.History = append(t.History, a2a.NewAgentTextMessage(reply))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete task %s: %w", params.ID, err)
	}

	m.logger.InfoContext(ctx, "task completed",
		slog.String("task_id", params.ID),
		slog.Int("history_len", len(completed.History)),
	)
	return completed, nil
}

// OnGetTask implements [TaskManager].
func (m *AgentTaskManager) OnGetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.OnGetTask",
		trace.WithAttributes(attribute.String("a2a.task_id", params.ID)),
	)
	defer span.End()

	t, err := m.store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if n := params.HistoryLength; n != nil && *n < len(t.History) {
		if *n == 0 {
			t.History = []a2a.Message{}
		} else {
			t.History = t.History[len(t.History)-*n:]
		}
	}
	return t, nil
}
