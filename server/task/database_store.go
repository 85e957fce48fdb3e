// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/go-json-experiment/json"
	"gorm.io/gorm"

	"github.com/go-a2a/a2a-lite"
)

// statusColumn stores an [a2a.TaskStatus] as a JSON column.
type statusColumn struct {
	a2a.TaskStatus
}

var (
	_ driver.Valuer = statusColumn{}
	_ sql.Scanner   = (*statusColumn)(nil)
)

// Value implements [driver.Valuer].
func (c statusColumn) Value() (driver.Value, error) {
	data, err := json.Marshal(c.TaskStatus)
	if err != nil {
		return nil, fmt.Errorf("marshal task status: %w", err)
	}
	return string(data), nil
}

// Scan implements [database/sql.Scanner].
func (c *statusColumn) Scan(src any) error {
	data, err := columnBytes(src)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &c.TaskStatus); err != nil {
		return fmt.Errorf("unmarshal task status: %w", err)
	}
	return nil
}

// historyColumn stores a task's message history as a JSON column.
type historyColumn struct {
	Messages []a2a.Message
}

var (
	_ driver.Valuer = historyColumn{}
	_ sql.Scanner   = (*historyColumn)(nil)
)

// Value implements [driver.Valuer].
func (c historyColumn) Value() (driver.Value, error) {
	data, err := json.Marshal(c.Messages)
	if err != nil {
		return nil, fmt.Errorf("marshal task history: %w", err)
	}
	return string(data), nil
}

// Scan implements [database/sql.Scanner].
func (c *historyColumn) Scan(src any) error {
	data, err := columnBytes(src)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &c.Messages); err != nil {
		return fmt.Errorf("unmarshal task history: %w", err)
	}
	return nil
}

func columnBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", src)
	}
}

// taskRecord is the gorm model backing [DatabaseStore].
type taskRecord struct {
	ID        string        `gorm:"primaryKey;column:id"`
	SessionID string        `gorm:"column:session_id;index"`
	Status    statusColumn  `gorm:"column:status;type:text"`
	History   historyColumn `gorm:"column:history;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName implements the gorm Tabler interface.
func (taskRecord) TableName() string { return "a2a_tasks" }

func recordFromTask(t *a2a.Task) *taskRecord {
	return &taskRecord{
		ID:        t.ID,
		SessionID: t.SessionID,
		Status:    statusColumn{TaskStatus: t.Status},
		History:   historyColumn{Messages: t.History},
	}
}

func (r *taskRecord) toTask() *a2a.Task {
	return &a2a.Task{
		ID:        r.ID,
		SessionID: r.SessionID,
		Status:    r.Status.TaskStatus,
		History:   r.History.Messages,
	}
}

// DatabaseStore is a [Store] backed by a relational database through gorm.
// The caller supplies an opened *gorm.DB; the store does not manage the
// connection's lifecycle.
type DatabaseStore struct {
	db *gorm.DB
}

var _ Store = (*DatabaseStore)(nil)

// NewDatabaseStore creates a new [DatabaseStore] and migrates its schema.
func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if err := db.AutoMigrate(&taskRecord{}); err != nil {
		return nil, fmt.Errorf("migrate task schema: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

// Upsert implements [Store].
func (s *DatabaseStore) Upsert(ctx context.Context, t *a2a.Task) (*a2a.Task, error) {
	var result *a2a.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record taskRecord
		err := tx.First(&record, "id = ?", t.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = *recordFromTask(t)
		case err != nil:
			return fmt.Errorf("load task %s: %w", t.ID, err)
		default:
			// Append path: only history grows. Status moves through
			// Update so the state machine never regresses.
			record.History.Messages = append(record.History.Messages, t.History...)
			if t.SessionID != "" {
				record.SessionID = t.SessionID
			}
		}

		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("save task %s: %w", t.ID, err)
		}
		result = record.toTask()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get implements [Store].
func (s *DatabaseStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	var record taskRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, a2a.NewTaskNotFoundError(taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("load task %s: %w", taskID, err)
	}
	return record.toTask(), nil
}

// Update implements [Store].
func (s *DatabaseStore) Update(ctx context.Context, taskID string, fn func(*a2a.Task) error) (*a2a.Task, error) {
	var result *a2a.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record taskRecord
		err := tx.First(&record, "id = ?", taskID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a2a.NewTaskNotFoundError(taskID)
		}
		if err != nil {
			return fmt.Errorf("load task %s: %w", taskID, err)
		}

		t := record.toTask()
		if err := fn(t); err != nil {
			return err
		}

		updated := recordFromTask(t)
		updated.CreatedAt = record.CreatedAt
		if err := tx.Save(updated).Error; err != nil {
			return fmt.Errorf("save task %s: %w", taskID, err)
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
