// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package task provides storage backends for A2A tasks.
package task

import (
	"context"

	"github.com/go-a2a/a2a-lite"
)

// Store persists tasks across requests. Every method that hands out a task
// returns a deep snapshot; callers can read and modify it freely without
// racing concurrent requests.
type Store interface {
	// Upsert creates the task if it does not exist, or appends the new
	// history entries of the given task to the stored one. It returns a
	// snapshot of the stored task after the write.
	Upsert(ctx context.Context, t *a2a.Task) (*a2a.Task, error)

	// Get returns a snapshot of the task with the given ID, or
	// [a2a.TaskNotFoundError] if no such task exists.
	Get(ctx context.Context, taskID string) (*a2a.Task, error)

	// Update applies fn to the stored task under the store's lock and
	// returns a snapshot of the result. fn receives the live task and may
	// mutate it in place; if fn returns an error the task is left
	// unchanged.
	Update(ctx context.Context, taskID string, fn func(*a2a.Task) error) (*a2a.Task, error)
}
