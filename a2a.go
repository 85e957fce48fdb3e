// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the core types and JSON-RPC wire format for a minimal
// Agent-to-Agent (A2A) task protocol: clients submit units of work ("tasks")
// to an agent over JSON-RPC-over-HTTP, the agent appends its reply to the
// task's message history, and any caller can later re-fetch the task by ID.
package a2a

import (
	"fmt"
	"time"
)

// Version is the current version of the protocol implementation.
const Version = "0.1.0"

// TaskState represents the lifecycle state of a Task.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been received and stored.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the task is being worked on.
	TaskStateWorking TaskState = "working"

	// TaskStateCompleted indicates the task has been completed.
	TaskStateCompleted TaskState = "completed"

	// TaskStateCanceled indicates the task has been canceled.
	TaskStateCanceled TaskState = "canceled"

	// TaskStateFailed indicates the task has failed.
	TaskStateFailed TaskState = "failed"
)

// Terminal reports whether no further state transition can occur.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed:
		return true
	default:
		return false
	}
}

// TaskStatus carries the current state of a task, an optional message
// explaining it (used to record responder failures), and the time of the
// last transition.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Task represents a unit of conversational work identified by a
// caller-supplied ID. History is append-only; the first entry is always the
// user message that created the task.
type Task struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId,omitzero"`
	Status    TaskStatus `json:"status"`
	History   []Message  `json:"history"`
}

// Validate ensures the Task is well formed.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if len(t.History) == 0 {
		return fmt.Errorf("task history cannot be empty")
	}
	for i := range t.History {
		if err := t.History[i].Validate(); err != nil {
			return fmt.Errorf("history message at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the task. Part values are shared between the
// copies; parts are immutable once appended to a history.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	clone := &Task{
		ID:        t.ID,
		SessionID: t.SessionID,
		Status:    t.Status,
	}
	if t.Status.Message != nil {
		msg := *t.Status.Message
		clone.Status.Message = &msg
	}
	if t.History != nil {
		clone.History = make([]Message, len(t.History))
		for i, m := range t.History {
			clone.History[i] = Message{Role: m.Role}
			if m.Parts != nil {
				clone.History[i].Parts = make([]Part, len(m.Parts))
				copy(clone.History[i].Parts, m.Parts)
			}
		}
	}
	return clone
}

// TaskSendParams are the parameters of a "tasks/send" request.
type TaskSendParams struct {
	ID        string  `json:"id"`
	SessionID string  `json:"sessionId,omitzero"`
	Message   Message `json:"message"`
}

// Validate ensures the TaskSendParams are well formed.
func (p TaskSendParams) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if err := p.Message.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	return nil
}

// TaskQueryParams are the parameters of a "tasks/get" request. HistoryLength,
// when set, limits the returned history to its last N messages; zero means an
// empty history and nil means the full history.
type TaskQueryParams struct {
	ID            string `json:"id"`
	HistoryLength *int   `json:"historyLength,omitzero"`
}

// Validate ensures the TaskQueryParams are well formed.
func (p TaskQueryParams) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if p.HistoryLength != nil && *p.HistoryLength < 0 {
		return fmt.Errorf("history length cannot be negative")
	}
	return nil
}

// AgentCapabilities declares which optional protocol features an agent
// supports.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

// AgentSkill describes a unit of capability an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitzero"`
	Tags        []string `json:"tags,omitzero"`
	Examples    []string `json:"examples,omitzero"`
	InputModes  []string `json:"inputModes,omitzero"`
	OutputModes []string `json:"outputModes,omitzero"`
}

// Validate ensures the AgentSkill is valid.
func (s AgentSkill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("agent skill ID cannot be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("agent skill name cannot be empty")
	}
	return nil
}

// AgentCard is the static descriptor served at /.well-known/agent.json for
// agent discovery.
type AgentCard struct {
	Name         string            `json:"name"`
	Description  string            `json:"description,omitzero"`
	URL          string            `json:"url"`
	Version      string            `json:"version"`
	Capabilities AgentCapabilities `json:"capabilities"`
	Skills       []AgentSkill      `json:"skills"`
}

// Validate ensures the AgentCard is valid.
func (c AgentCard) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("agent card name cannot be empty")
	}
	if c.URL == "" {
		return fmt.Errorf("agent card URL cannot be empty")
	}
	if c.Version == "" {
		return fmt.Errorf("agent card version cannot be empty")
	}
	for i, skill := range c.Skills {
		if err := skill.Validate(); err != nil {
			return fmt.Errorf("skill at index %d is invalid: %w", i, err)
		}
	}
	return nil
}
