// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
)

// TaskNotFoundError is returned by task managers and stores when no task
// exists for the requested ID.
type TaskNotFoundError struct {
	TaskID string
}

var _ error = (*TaskNotFoundError)(nil)

// Error implements the error interface.
func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.TaskID)
}

// NewTaskNotFoundError creates a new [TaskNotFoundError] for the given task
// ID.
func NewTaskNotFoundError(taskID string) *TaskNotFoundError {
	return &TaskNotFoundError{TaskID: taskID}
}
