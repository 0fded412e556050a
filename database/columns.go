package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateColumn adds a column to a board. A missing board surfaces as
// ErrNotFound through the foreign key.
func (s *Store) CreateColumn(ctx context.Context, boardID int64, title string, sortOrder float64) (*Column, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO columns (board_id, title, sort_order) VALUES (?, ?, ?)`,
		boardID, title, sortOrder,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetColumn(ctx, id)
}

// GetColumn retrieves a column without its tasks.
func (s *Store) GetColumn(ctx context.Context, columnID int64) (*Column, error) {
	col := &Column{Tasks: []*Task{}}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, board_id, title, sort_order FROM columns WHERE id = ?`,
		columnID,
	).Scan(&col.ID, &col.BoardID, &col.Title, &col.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("column %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query column: %w", err)
	}
	return col, nil
}

// UpdateColumn replaces the column's mutable fields. The owning board is
// immutable after creation.
func (s *Store) UpdateColumn(ctx context.Context, columnID int64, title string, sortOrder float64) (*Column, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE columns SET title = ?, sort_order = ? WHERE id = ?`,
		title, sortOrder, columnID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("column %w", ErrNotFound)
	}
	return s.GetColumn(ctx, columnID)
}

// DeleteColumn removes the column and, through the cascade, its tasks.
func (s *Store) DeleteColumn(ctx context.Context, columnID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, columnID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("column %w", ErrNotFound)
	}
	return nil
}
