package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateBoard inserts a board and its implicit owner membership in a single
// transaction: if the membership insert fails, the board never existed.
func (s *Store) CreateBoard(ctx context.Context, title, ownerID string) (*Board, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	board := &Board{
		Title:     title,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO boards (title, owner_id, created_at) VALUES (?, ?, ?)`,
		board.Title, board.OwnerID, board.CreatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	board.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO board_members (board_id, user_id, role) VALUES (?, ?, ?)`,
		board.ID, board.OwnerID, RoleOwner,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return board, nil
}

// GetBoard retrieves a board row without its columns.
func (s *Store) GetBoard(ctx context.Context, boardID int64) (*Board, error) {
	board := &Board{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, owner_id, created_at FROM boards WHERE id = ?`,
		boardID,
	).Scan(&board.ID, &board.Title, &board.OwnerID, &board.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}
	return board, nil
}

// ListBoardsForUser returns every board the user is a member of.
func (s *Store) ListBoardsForUser(ctx context.Context, userID string) ([]*Board, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.title, b.owner_id, b.created_at
		 FROM boards b
		 JOIN board_members bm ON bm.board_id = b.id
		 WHERE bm.user_id = ?
		 ORDER BY b.created_at, b.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []*Board{}
	for rows.Next() {
		board := &Board{}
		if err := rows.Scan(&board.ID, &board.Title, &board.OwnerID, &board.CreatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}

// UpdateBoard replaces the board's title.
func (s *Store) UpdateBoard(ctx context.Context, boardID int64, title string) (*Board, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE boards SET title = ? WHERE id = ?`, title, boardID)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("board %w", ErrNotFound)
	}
	return s.GetBoard(ctx, boardID)
}

// DeleteBoard removes the board. Columns, tasks, comments, tag links, and
// membership rows go with it through the schema's cascades.
func (s *Store) DeleteBoard(ctx context.Context, boardID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, boardID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("board %w", ErrNotFound)
	}
	return nil
}

// GetBoardTree loads the full hierarchy: columns ordered by sort_order,
// their tasks ordered by sort_order, each task with its tags and its
// comments ordered by creation time. Ties break on id.
func (s *Store) GetBoardTree(ctx context.Context, boardID int64) (*Board, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	board.Columns = []*Column{}

	columnsByID := map[int64]*Column{}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, board_id, title, sort_order
		 FROM columns WHERE board_id = ?
		 ORDER BY sort_order, id`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		col := &Column{Tasks: []*Task{}}
		if err := rows.Scan(&col.ID, &col.BoardID, &col.Title, &col.SortOrder); err != nil {
			return nil, err
		}
		board.Columns = append(board.Columns, col)
		columnsByID[col.ID] = col
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasksByID := map[int64]*Task{}
	taskRows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.column_id, t.title, t.description, t.sort_order,
		        t.due_date, t.created_at, t.created_by, t.assigned_to, t.is_completed
		 FROM tasks t
		 JOIN columns c ON c.id = t.column_id
		 WHERE c.board_id = ?
		 ORDER BY t.sort_order, t.id`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()
	for taskRows.Next() {
		task, err := scanTask(taskRows)
		if err != nil {
			return nil, err
		}
		if col, ok := columnsByID[task.ColumnID]; ok {
			col.Tasks = append(col.Tasks, task)
		}
		tasksByID[task.ID] = task
	}
	if err := taskRows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := s.db.QueryContext(ctx,
		`SELECT tt.task_id, g.id, g.name, g.color
		 FROM task_tags tt
		 JOIN tags g ON g.id = tt.tag_id
		 JOIN tasks t ON t.id = tt.task_id
		 JOIN columns c ON c.id = t.column_id
		 WHERE c.board_id = ?`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var taskID int64
		var tag Tag
		if err := tagRows.Scan(&taskID, &tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		if task, ok := tasksByID[taskID]; ok {
			task.Tags = append(task.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	commentRows, err := s.db.QueryContext(ctx,
		`SELECT cm.id, cm.task_id, cm.author_id, u.display_name, cm.content, cm.created_at
		 FROM comments cm
		 JOIN users u ON u.id = cm.author_id
		 JOIN tasks t ON t.id = cm.task_id
		 JOIN columns c ON c.id = t.column_id
		 WHERE c.board_id = ?
		 ORDER BY cm.created_at, cm.id`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var comment Comment
		if err := commentRows.Scan(&comment.ID, &comment.TaskID, &comment.AuthorID,
			&comment.AuthorName, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, err
		}
		if task, ok := tasksByID[comment.TaskID]; ok {
			task.Comments = append(task.Comments, comment)
		}
	}
	if err := commentRows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
