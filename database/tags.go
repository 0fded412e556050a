package database

import (
	"context"
	"fmt"
	"strings"
)

// CreateTag creates a global tag. An empty color falls back to the default.
func (s *Store) CreateTag(ctx context.Context, name, color string) (*Tag, error) {
	if color == "" {
		color = DefaultTagColor
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name, color) VALUES (?, ?)`, name, color)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Tag{ID: id, Name: name, Color: color}, nil
}

// ListTags returns all tags. Tags are global, not board-scoped.
func (s *Store) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// DeleteTag removes a tag and detaches it from every task.
func (s *Store) DeleteTag(ctx context.Context, tagID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, tagID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("tag %w", ErrNotFound)
	}
	return nil
}

// AddTagsToTask attaches a batch of tags to a task. The batch is applied
// wholesale: if the task or any tag id is missing, nothing changes.
// Re-adding an already-attached tag is a no-op.
func (s *Store) AddTagsToTask(ctx context.Context, taskID int64, tagIDs []int64) ([]Tag, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`, taskID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("task %w", ErrNotFound)
	}

	unique := dedupeIDs(tagIDs)
	if len(unique) > 0 {
		args := make([]any, len(unique))
		for i, id := range unique {
			args[i] = id
		}
		placeholders := strings.Repeat("?,", len(unique)-1) + "?"

		var count int
		err = tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM tags WHERE id IN (%s)`, placeholders),
			args...,
		).Scan(&count)
		if err != nil {
			return nil, err
		}
		if count != len(unique) {
			return nil, fmt.Errorf("tag %w", ErrNotFound)
		}

		for _, tagID := range unique {
			_, err = tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`,
				taskID, tagID,
			)
			if err != nil {
				return nil, translateErr(err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.ListTagsForTask(ctx, taskID)
}

// RemoveTagsFromTask detaches the given tags from the task. Ids that are
// not currently attached are silently ignored.
func (s *Store) RemoveTagsFromTask(ctx context.Context, taskID int64, tagIDs []int64) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`, taskID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("task %w", ErrNotFound)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(tagIDs)+1)
	args = append(args, taskID)
	for _, id := range tagIDs {
		args = append(args, id)
	}
	placeholders := strings.Repeat("?,", len(tagIDs)-1) + "?"

	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM task_tags WHERE task_id = ? AND tag_id IN (%s)`, placeholders),
		args...,
	)
	return err
}

// ListTagsForTask returns the task's tags.
func (s *Store) ListTagsForTask(ctx context.Context, taskID int64) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.color
		 FROM task_tags tt
		 JOIN tags g ON g.id = tt.tag_id
		 WHERE tt.task_id = ?
		 ORDER BY g.id`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
