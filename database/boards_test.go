package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateBoardAddsOwnerMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com", "Owner")
	board, err := s.CreateBoard(ctx, "Sprint 1", owner.ID)
	require.NoError(t, err)
	require.NotZero(t, board.ID)

	members, err := s.ListMembers(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, owner.ID, members[0].UserID)
	require.Equal(t, RoleOwner, members[0].Role)
}

func TestCreateBoardUnknownOwnerRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateBoard(ctx, "Orphan", "no-such-user")
	require.ErrorIs(t, err, ErrNotFound)

	// The board insert must not survive the failed membership insert.
	var count int
	err = s.db.QueryRow(`SELECT COUNT(*) FROM boards`).Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestListBoardsForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com", "Alice")
	bob := createTestUser(t, s, "bob@example.com", "Bob")

	b1, err := s.CreateBoard(ctx, "Alice's board", alice.ID)
	require.NoError(t, err)
	_, err = s.CreateBoard(ctx, "Bob's board", bob.ID)
	require.NoError(t, err)

	boards, err := s.ListBoardsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, b1.ID, boards[0].ID)

	// Membership, not ownership, is what lists a board.
	_, err = s.AddMember(ctx, b1.ID, bob.ID, RoleMember)
	require.NoError(t, err)
	boards, err = s.ListBoardsForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, boards, 2)
}

func TestBoardRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com", "Owner")
	created, err := s.CreateBoard(ctx, "Roadmap", owner.ID)
	require.NoError(t, err)

	got, err := s.GetBoard(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Roadmap", got.Title)
	require.Equal(t, owner.ID, got.OwnerID)
	require.False(t, got.CreatedAt.IsZero())

	// System-assigned fields are stable across reads.
	again, err := s.GetBoard(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, got.CreatedAt, again.CreatedAt)
}

func TestDeleteBoardCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com", "Owner")
	member := createTestUser(t, s, "member@example.com", "Member")

	board, err := s.CreateBoard(ctx, "Doomed", owner.ID)
	require.NoError(t, err)
	_, err = s.AddMember(ctx, board.ID, member.ID, RoleMember)
	require.NoError(t, err)

	col, err := s.CreateColumn(ctx, board.ID, "To Do", 0)
	require.NoError(t, err)
	task, err := s.CreateTask(ctx, col.ID, NewTask{Title: "Task", CreatedByID: member.ID})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, task.ID, member.ID, "a comment")
	require.NoError(t, err)
	tag, err := s.CreateTag(ctx, "urgent", "")
	require.NoError(t, err)
	_, err = s.AddTagsToTask(ctx, task.ID, []int64{tag.ID})
	require.NoError(t, err)

	// An unrelated board must survive.
	other, err := s.CreateBoard(ctx, "Keeper", owner.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteBoard(ctx, board.ID))

	for _, q := range []string{
		`SELECT COUNT(*) FROM columns WHERE board_id = ?`,
		`SELECT COUNT(*) FROM board_members WHERE board_id = ?`,
	} {
		var count int
		require.NoError(t, s.db.QueryRow(q, board.ID).Scan(&count))
		require.Zero(t, count)
	}

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count))
	require.Zero(t, count)
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&count))
	require.Zero(t, count)
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM task_tags`).Scan(&count))
	require.Zero(t, count)

	// Tags are global and survive the cascade.
	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	_, err = s.GetBoard(ctx, other.ID)
	require.NoError(t, err)
}

func TestGetBoardTreeOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com", "Owner")
	board, err := s.CreateBoard(ctx, "Sprint", owner.ID)
	require.NoError(t, err)

	// Insert out of order; reads must come back sorted by sort_order.
	_, err = s.CreateColumn(ctx, board.ID, "Done", 1)
	require.NoError(t, err)
	todo, err := s.CreateColumn(ctx, board.ID, "To Do", 0)
	require.NoError(t, err)

	second, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Second", SortOrder: 1.5, CreatedByID: owner.ID})
	require.NoError(t, err)
	first, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "First", SortOrder: 0.5, CreatedByID: owner.ID})
	require.NoError(t, err)

	tree, err := s.GetBoardTree(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, tree.Columns, 2)
	require.Equal(t, "To Do", tree.Columns[0].Title)
	require.Equal(t, "Done", tree.Columns[1].Title)

	tasks := tree.Columns[0].Tasks
	require.Len(t, tasks, 2)
	require.Equal(t, first.ID, tasks[0].ID)
	require.Equal(t, second.ID, tasks[1].ID)
	require.Empty(t, tree.Columns[1].Tasks)
}

func TestGetBoardTreeEqualSortOrderBreaksTiesByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner@example.com", "Owner")
	board, err := s.CreateBoard(ctx, "Ties", owner.ID)
	require.NoError(t, err)
	col, err := s.CreateColumn(ctx, board.ID, "To Do", 0)
	require.NoError(t, err)

	a, err := s.CreateTask(ctx, col.ID, NewTask{Title: "a", SortOrder: 1, CreatedByID: owner.ID})
	require.NoError(t, err)
	b, err := s.CreateTask(ctx, col.ID, NewTask{Title: "b", SortOrder: 1, CreatedByID: owner.ID})
	require.NoError(t, err)

	tree, err := s.GetBoardTree(ctx, board.ID)
	require.NoError(t, err)
	tasks := tree.Columns[0].Tasks
	require.Len(t, tasks, 2)
	require.Equal(t, a.ID, tasks[0].ID)
	require.Equal(t, b.ID, tasks[1].ID)
}
