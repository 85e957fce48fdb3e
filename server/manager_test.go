// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-a2a/a2a-lite"
	"github.com/go-a2a/a2a-lite/server/task"
)

func echoResponder(prefix string) Responder {
	return ResponderFunc(func(_ context.Context, query, _ string) (string, error) {
		return prefix + query, nil
	})
}

func failingResponder(err error) Responder {
	return ResponderFunc(func(context.Context, string, string) (string, error) {
		return "", err
	})
}

func sendParams(taskID, text string) a2a.TaskSendParams {
	return a2a.TaskSendParams{
		ID:        taskID,
		SessionID: "session-1",
		Message:   a2a.NewUserTextMessage(text),
	}
}

func TestOnSendTaskCompletes(t *testing.T) {
	ctx := context.Background()
	manager := NewAgentTaskManager(task.NewMemoryStore(), echoResponder("echo: "))

	got, err := manager.OnSendTask(ctx, sendParams("task-1", "hello"))
	if err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}

	if got.Status.State != a2a.TaskStateCompleted {
		t.Errorf("State = %q, want %q", got.Status.State, a2a.TaskStateCompleted)
	}
	if got.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want %q", got.SessionID, "session-1")
	}
	if len(got.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(got.History))
	}
	if got.History[0].Role != a2a.RoleUser || got.History[0].Text() != "hello" {
		t.Errorf("History[0] = %v %q, want user %q", got.History[0].Role, got.History[0].Text(), "hello")
	}
	if got.History[1].Role != a2a.RoleAgent || got.History[1].Text() != "echo: hello" {
		t.Errorf("History[1] = %v %q, want agent %q", got.History[1].Role, got.History[1].Text(), "echo: hello")
	}
	if got.Status.Timestamp.IsZero() {
		t.Error("Status.Timestamp is zero")
	}
}

func TestOnSendTaskAppendsToExisting(t *testing.T) {
	ctx := context.Background()
	manager := NewAgentTaskManager(task.NewMemoryStore(), echoResponder("echo: "))

	if _, err := manager.OnSendTask(ctx, sendParams("task-1", "first")); err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}
	got, err := manager.OnSendTask(ctx, sendParams("task-1", "second"))
	if err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}

	// first, reply, second, reply.
	if len(got.History) != 4 {
		t.Fatalf("len(History) = %d, want 4", len(got.History))
	}
	if got.History[2].Text() != "second" {
		t.Errorf("History[2] = %q, want %q", got.History[2].Text(), "second")
	}
	if got.History[3].Text() != "echo: second" {
		t.Errorf("History[3] = %q, want %q", got.History[3].Text(), "echo: second")
	}
}

func TestOnSendTaskEmptyReply(t *testing.T) {
	ctx := context.Background()
	manager := NewAgentTaskManager(task.NewMemoryStore(), echoResponder(""))

	got, err := manager.OnSendTask(ctx, sendParams("task-1", ""))
	if err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}
	if got.Status.State != a2a.TaskStateCompleted {
		t.Errorf("State = %q, want %q", got.Status.State, a2a.TaskStateCompleted)
	}
	if got.History[1].Text() != "" {
		t.Errorf("History[1] = %q, want empty reply", got.History[1].Text())
	}
}

func TestOnSendTaskResponderFailure(t *testing.T) {
	ctx := context.Background()
	store := task.NewMemoryStore()
	respondErr := errors.New("model unavailable")
	manager := NewAgentTaskManager(store, failingResponder(respondErr))

	_, err := manager.OnSendTask(ctx, sendParams("task-1", "hello"))
	if !errors.Is(err, respondErr) {
		t.Fatalf("OnSendTask() error = %v, want %v", err, respondErr)
	}

	// The failure is recorded on the task, not swallowed.
	stored, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Status.State != a2a.TaskStateFailed {
		t.Errorf("State = %q, want %q", stored.Status.State, a2a.TaskStateFailed)
	}
	if stored.Status.Message == nil {
		t.Fatal("Status.Message is nil, want failure detail")
	}
	if !strings.Contains(stored.Status.Message.Text(), "model unavailable") {
		t.Errorf("Status.Message = %q, want it to mention %q", stored.Status.Message.Text(), "model unavailable")
	}
	// The triggering user message stays in history.
	if len(stored.History) != 1 {
		t.Errorf("len(History) = %d, want 1", len(stored.History))
	}
}

func TestOnGetTask(t *testing.T) {
	ctx := context.Background()
	manager := NewAgentTaskManager(task.NewMemoryStore(), echoResponder("echo: "))

	if _, err := manager.OnSendTask(ctx, sendParams("task-1", "hello")); err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}

	got, err := manager.OnGetTask(ctx, a2a.TaskQueryParams{ID: "task-1"})
	if err != nil {
		t.Fatalf("OnGetTask() error = %v", err)
	}
	if got.Status.State != a2a.TaskStateCompleted {
		t.Errorf("State = %q, want %q", got.Status.State, a2a.TaskStateCompleted)
	}
	if len(got.History) != 2 {
		t.Errorf("len(History) = %d, want 2", len(got.History))
	}
}

func TestOnGetTaskNotFound(t *testing.T) {
	manager := NewAgentTaskManager(task.NewMemoryStore(), echoResponder(""))

	_, err := manager.OnGetTask(context.Background(), a2a.TaskQueryParams{ID: "missing"})
	var notFound *a2a.TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("OnGetTask() error = %v, want TaskNotFoundError", err)
	}
}

func TestOnGetTaskHistoryLength(t *testing.T) {
	ctx := context.Background()
	manager := NewAgentTaskManager(task.NewMemoryStore(), echoResponder("echo: "))

	// Two sends leave four history entries.
	if _, err := manager.OnSendTask(ctx, sendParams("task-1", "first")); err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}
	if _, err := manager.OnSendTask(ctx, sendParams("task-1", "second")); err != nil {
		t.Fatalf("OnSendTask() error = %v", err)
	}

	tests := []struct {
		name      string
		limit     *int
		wantLen   int
		wantFirst string
	}{
		{name: "nil returns all", limit: nil, wantLen: 4, wantFirst: "first"},
		{name: "zero returns none", limit: ptr(0), wantLen: 0},
		{name: "limit within range", limit: ptr(2), wantLen: 2, wantFirst: "second"},
		{name: "limit beyond range", limit: ptr(10), wantLen: 4, wantFirst: "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := manager.OnGetTask(ctx, a2a.TaskQueryParams{ID: "task-1", HistoryLength: tt.limit})
			if err != nil {
				t.Fatalf("OnGetTask() error = %v", err)
			}
			if len(got.History) != tt.wantLen {
				t.Fatalf("len(History) = %d, want %d", len(got.History), tt.wantLen)
			}
			if tt.wantLen > 0 && got.History[0].Text() != tt.wantFirst {
				t.Errorf("History[0] = %q, want %q", got.History[0].Text(), tt.wantFirst)
			}
		})
	}
}

func ptr(n int) *int { return &n }
