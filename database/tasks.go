package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// NewTask carries the caller-supplied fields for task creation.
type NewTask struct {
	Title        string
	Description  string
	SortOrder    float64
	DueDate      *time.Time
	CreatedByID  string
	AssignedToID *string
	IsCompleted  bool
}

// TaskUpdate carries the mutable fields for a full-replace update. The
// owning column, creator, and creation time are immutable; moves go
// through MoveTask.
type TaskUpdate struct {
	Title        string
	Description  string
	SortOrder    float64
	DueDate      *time.Time
	AssignedToID *string
	IsCompleted  bool
}

// CreateTask adds a task to a column. Missing column or assignee surfaces
// as ErrNotFound through the foreign keys, so the insert never leaves a
// dangling reference.
func (s *Store) CreateTask(ctx context.Context, columnID int64, req NewTask) (*Task, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (column_id, title, description, sort_order, due_date,
		                    created_at, created_by, assigned_to, is_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		columnID, req.Title, req.Description, req.SortOrder, req.DueDate,
		time.Now().UTC(), req.CreatedByID, req.AssignedToID, req.IsCompleted,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task with its tags and comments.
func (s *Store) GetTask(ctx context.Context, taskID int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, column_id, title, description, sort_order,
		        due_date, created_at, created_by, assigned_to, is_completed
		 FROM tasks WHERE id = ?`,
		taskID,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	task.Tags, err = s.ListTagsForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	comments, err := s.ListCommentsForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Comments = comments
	return task, nil
}

// UpdateTask replaces the task's mutable fields in place.
func (s *Store) UpdateTask(ctx context.Context, taskID int64, req TaskUpdate) (*Task, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, sort_order = ?, due_date = ?,
		     assigned_to = ?, is_completed = ?
		 WHERE id = ?`,
		req.Title, req.Description, req.SortOrder, req.DueDate,
		req.AssignedToID, req.IsCompleted, taskID,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("task %w", ErrNotFound)
	}
	return s.GetTask(ctx, taskID)
}

// DeleteTask removes the task; its comments cascade and its tags detach.
func (s *Store) DeleteTask(ctx context.Context, taskID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("task %w", ErrNotFound)
	}
	return nil
}

// MoveTask reassigns the task's column and sort order in one transaction.
// Both the task and the target column must exist.
func (s *Store) MoveTask(ctx context.Context, taskID, targetColumnID int64, sortOrder float64) (*Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM columns WHERE id = ?)`, targetColumnID,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("column %w", ErrNotFound)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE tasks SET column_id = ?, sort_order = ? WHERE id = ?`,
		targetColumnID, sortOrder, taskID,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("task %w", ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.GetTask(ctx, taskID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	task := &Task{Tags: []Tag{}, Comments: []Comment{}}
	var dueDate sql.NullTime
	var assignedTo sql.NullString
	err := row.Scan(&task.ID, &task.ColumnID, &task.Title, &task.Description,
		&task.SortOrder, &dueDate, &task.CreatedAt, &task.CreatedByID,
		&assignedTo, &task.IsCompleted)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	if assignedTo.Valid {
		id := assignedTo.String
		task.AssignedToID = &id
	}
	return task, nil
}
