package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateComment adds a comment to a task on behalf of the author. A
// missing task surfaces as ErrNotFound through the foreign key.
func (s *Store) CreateComment(ctx context.Context, taskID int64, authorID, content string) (*Comment, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (task_id, author_id, content, created_at)
		 VALUES (?, ?, ?, ?)`,
		taskID, authorID, content, time.Now().UTC(),
	)
	if err != nil {
		return nil, translateErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetComment(ctx, id)
}

// GetComment retrieves a comment joined with its author's display name.
func (s *Store) GetComment(ctx context.Context, commentID int64) (*Comment, error) {
	comment := &Comment{}
	err := s.db.QueryRowContext(ctx,
		`SELECT cm.id, cm.task_id, cm.author_id, u.display_name, cm.content, cm.created_at
		 FROM comments cm
		 JOIN users u ON u.id = cm.author_id
		 WHERE cm.id = ?`,
		commentID,
	).Scan(&comment.ID, &comment.TaskID, &comment.AuthorID,
		&comment.AuthorName, &comment.Content, &comment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	return comment, nil
}

// UpdateComment replaces the comment's content. Author and task are
// immutable after creation.
func (s *Store) UpdateComment(ctx context.Context, commentID int64, content string) (*Comment, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE comments SET content = ? WHERE id = ?`, content, commentID)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("comment %w", ErrNotFound)
	}
	return s.GetComment(ctx, commentID)
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, commentID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, commentID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("comment %w", ErrNotFound)
	}
	return nil
}

// ListCommentsForTask returns the task's comments oldest-first.
func (s *Store) ListCommentsForTask(ctx context.Context, taskID int64) ([]Comment, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`, taskID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("task %w", ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cm.id, cm.task_id, cm.author_id, u.display_name, cm.content, cm.created_at
		 FROM comments cm
		 JOIN users u ON u.id = cm.author_id
		 WHERE cm.task_id = ?
		 ORDER BY cm.created_at, cm.id`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(&comment.ID, &comment.TaskID, &comment.AuthorID,
			&comment.AuthorName, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
