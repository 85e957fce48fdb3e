// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

func TestTaskStateTerminal(t *testing.T) {
	tests := map[TaskState]bool{
		TaskStateSubmitted: false,
		TaskStateWorking:   false,
		TaskStateCompleted: true,
		TaskStateCanceled:  true,
		TaskStateFailed:    true,
	}
	for state, want := range tests {
		if got := state.Terminal(); got != want {
			t.Errorf("TaskState(%q).Terminal() = %v, want %v", state, got, want)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid task",
			task: Task{
				ID:      "task-1",
				Status:  TaskStatus{State: TaskStateSubmitted},
				History: []Message{NewUserTextMessage("hello")},
			},
		},
		{
			name: "missing ID",
			task: Task{
				Status:  TaskStatus{State: TaskStateSubmitted},
				History: []Message{NewUserTextMessage("hello")},
			},
			wantErr: true,
		},
		{
			name: "empty history",
			task: Task{
				ID:     "task-1",
				Status: TaskStatus{State: TaskStateSubmitted},
			},
			wantErr: true,
		},
		{
			name: "invalid history message",
			task: Task{
				ID:      "task-1",
				Status:  TaskStatus{State: TaskStateSubmitted},
				History: []Message{{Role: "speaker"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskClone(t *testing.T) {
	orig := &Task{
		ID:        "task-1",
		SessionID: "session-1",
		Status: TaskStatus{
			State:     TaskStateCompleted,
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		History: []Message{
			NewUserTextMessage("what time is it"),
			NewAgentTextMessage("noon"),
		},
	}

	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	// Mutating the clone's history must not reach the original.
	clone.History = append(clone.History, NewUserTextMessage("and now?"))
	clone.History[0].Parts[0] = NewTextPart("replaced")
	clone.Status.State = TaskStateFailed

	if len(orig.History) != 2 {
		t.Errorf("original history length = %d, want 2", len(orig.History))
	}
	if got := orig.History[0].Text(); got != "what time is it" {
		t.Errorf("original first message = %q, want %q", got, "what time is it")
	}
	if orig.Status.State != TaskStateCompleted {
		t.Errorf("original state = %q, want %q", orig.Status.State, TaskStateCompleted)
	}
}

func TestTaskCloneNil(t *testing.T) {
	var task *Task
	if got := task.Clone(); got != nil {
		t.Errorf("Clone() on nil task = %v, want nil", got)
	}
}

func TestTaskJSONRoundTrip(t *testing.T) {
	orig := Task{
		ID:        "task-1",
		SessionID: "session-1",
		Status: TaskStatus{
			State:     TaskStateCompleted,
			Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		History: []Message{
			NewUserTextMessage("hello"),
			NewAgentTextMessage("hi there"),
		},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskSendParamsValidate(t *testing.T) {
	valid := TaskSendParams{
		ID:      "task-1",
		Message: NewUserTextMessage("hello"),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid params error = %v", err)
	}

	missingID := TaskSendParams{Message: NewUserTextMessage("hello")}
	if err := missingID.Validate(); err == nil {
		t.Error("Validate() on params without ID succeeded, want error")
	}

	badMessage := TaskSendParams{ID: "task-1"}
	if err := badMessage.Validate(); err == nil {
		t.Error("Validate() on params with empty message succeeded, want error")
	}
}

func TestTaskQueryParamsValidate(t *testing.T) {
	zero := 0
	negative := -1

	tests := []struct {
		name    string
		params  TaskQueryParams
		wantErr bool
	}{
		{name: "no limit", params: TaskQueryParams{ID: "task-1"}},
		{name: "zero limit", params: TaskQueryParams{ID: "task-1", HistoryLength: &zero}},
		{name: "negative limit", params: TaskQueryParams{ID: "task-1", HistoryLength: &negative}, wantErr: true},
		{name: "missing ID", params: TaskQueryParams{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAgentCardValidate(t *testing.T) {
	card := AgentCard{
		Name:    "Test Agent",
		URL:     "http://localhost:8080",
		Version: "1.0.0",
		Skills: []AgentSkill{
			{ID: "echo", Name: "Echo"},
		},
	}
	if err := card.Validate(); err != nil {
		t.Errorf("Validate() on valid card error = %v", err)
	}

	card.Skills = append(card.Skills, AgentSkill{Name: "No ID"})
	if err := card.Validate(); err == nil {
		t.Error("Validate() on card with invalid skill succeeded, want error")
	}
}
