package database

import (
	"context"
	"fmt"
)

// HasAccess reports whether a membership row exists for the pair.
func (s *Store) HasAccess(ctx context.Context, boardID int64, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM board_members WHERE board_id = ? AND user_id = ?)`,
		boardID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query membership: %w", err)
	}
	return exists, nil
}

// AddMember inserts a membership row for an already-resolved user. The
// composite primary key turns a duplicate pair into ErrConflict; a missing
// board or user surfaces as ErrNotFound through the foreign keys.
func (s *Store) AddMember(ctx context.Context, boardID int64, userID, role string) (*BoardMember, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO board_members (board_id, user_id, role) VALUES (?, ?, ?)`,
		boardID, userID, role,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	member := &BoardMember{}
	err = s.db.QueryRowContext(ctx,
		`SELECT bm.board_id, bm.user_id, bm.role, u.display_name, u.email
		 FROM board_members bm
		 JOIN users u ON u.id = bm.user_id
		 WHERE bm.board_id = ? AND bm.user_id = ?`,
		boardID, userID,
	).Scan(&member.BoardID, &member.UserID, &member.Role, &member.DisplayName, &member.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to query member: %w", err)
	}
	return member, nil
}

// RemoveMember deletes the membership row for the pair.
func (s *Store) RemoveMember(ctx context.Context, boardID int64, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM board_members WHERE board_id = ? AND user_id = ?`,
		boardID, userID,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("member %w", ErrNotFound)
	}
	return nil
}

// ListMembers returns the board's members joined with user display fields.
func (s *Store) ListMembers(ctx context.Context, boardID int64) ([]*BoardMember, error) {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT bm.board_id, bm.user_id, bm.role, u.display_name, u.email
		 FROM board_members bm
		 JOIN users u ON u.id = bm.user_id
		 WHERE bm.board_id = ?
		 ORDER BY u.display_name`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*BoardMember{}
	for rows.Next() {
		member := &BoardMember{}
		if err := rows.Scan(&member.BoardID, &member.UserID, &member.Role,
			&member.DisplayName, &member.Email); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}
