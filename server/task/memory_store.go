// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"sync"

	"github.com/go-a2a/a2a-lite"
)

// MemoryStore is an in-memory implementation of [Store]. A single mutex
// guards the task map; per-task locking buys nothing at this scale.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]*a2a.Task
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*a2a.Task),
	}
}

// Upsert implements [Store].
func (s *MemoryStore) Upsert(_ context.Context, t *a2a.Task) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[t.ID]
	if !ok {
		stored = t.Clone()
		s.tasks[t.ID] = stored
		return stored.Clone(), nil
	}

	// Append path: only history grows. Status moves through Update so the
	// state machine never regresses.
	stored.History = append(stored.History, t.Clone().History...)
	if t.SessionID != "" {
		stored.SessionID = t.SessionID
	}
	return stored.Clone(), nil
}

// Get implements [Store].
func (s *MemoryStore) Get(_ context.Context, taskID string) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[taskID]
	if !ok {
		return nil, a2a.NewTaskNotFoundError(taskID)
	}
	return stored.Clone(), nil
}

// Update implements [Store].
func (s *MemoryStore) Update(_ context.Context, taskID string, fn func(*a2a.Task) error) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[taskID]
	if !ok {
		return nil, a2a.NewTaskNotFoundError(taskID)
	}

	// fn runs against a scratch copy so a failed update leaves the stored
	// task untouched.
	scratch := stored.Clone()
	if err := fn(scratch); err != nil {
		return nil, err
	}
	s.tasks[taskID] = scratch
	return scratch.Clone(), nil
}
