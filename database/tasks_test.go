package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupBoard(t *testing.T, s *Store) (owner *User, board *Board, todo, done *Column) {
	t.Helper()
	ctx := context.Background()

	owner = createTestUser(t, s, "owner@example.com", "Owner")
	var err error
	board, err = s.CreateBoard(ctx, "Sprint", owner.ID)
	require.NoError(t, err)
	todo, err = s.CreateColumn(ctx, board.ID, "To Do", 0)
	require.NoError(t, err)
	done, err = s.CreateColumn(ctx, board.ID, "Done", 1)
	require.NoError(t, err)
	return owner, board, todo, done
}

func TestTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	created, err := s.CreateTask(ctx, todo.ID, NewTask{
		Title:        "Write report",
		Description:  "all of it",
		SortOrder:    0.5,
		DueDate:      &due,
		CreatedByID:  owner.ID,
		AssignedToID: &owner.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Write report", got.Title)
	require.Equal(t, "all of it", got.Description)
	require.Equal(t, 0.5, got.SortOrder)
	require.NotNil(t, got.DueDate)
	require.True(t, due.Equal(*got.DueDate))
	require.Equal(t, owner.ID, got.CreatedByID)
	require.NotNil(t, got.AssignedToID)
	require.Equal(t, owner.ID, *got.AssignedToID)
	require.False(t, got.IsCompleted)
	require.Empty(t, got.Tags)
	require.Empty(t, got.Comments)
}

func TestCreateTaskMissingColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, s, "owner@example.com", "Owner")

	_, err := s.CreateTask(ctx, 9999, NewTask{Title: "Lost", CreatedByID: owner.ID})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	ghost := "not-a-user"
	_, err := s.CreateTask(ctx, todo.ID, NewTask{
		Title:        "Unassignable",
		CreatedByID:  owner.ID,
		AssignedToID: &ghost,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTaskReplacesMutableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Draft", CreatedByID: owner.ID})
	require.NoError(t, err)

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateTask(ctx, task.ID, TaskUpdate{
		Title:       "Final",
		Description: "done",
		SortOrder:   3,
		DueDate:     &due,
		IsCompleted: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Final", updated.Title)
	require.True(t, updated.IsCompleted)
	require.Nil(t, updated.AssignedToID)

	// Immutable fields survive.
	require.Equal(t, task.ColumnID, updated.ColumnID)
	require.Equal(t, task.CreatedByID, updated.CreatedByID)
	require.Equal(t, task.CreatedAt, updated.CreatedAt)
}

func TestMoveTaskScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, board, todo, done := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Write report", CreatedByID: owner.ID})
	require.NoError(t, err)

	moved, err := s.MoveTask(ctx, task.ID, done.ID, 0)
	require.NoError(t, err)
	require.Equal(t, done.ID, moved.ColumnID)
	require.Equal(t, float64(0), moved.SortOrder)

	tree, err := s.GetBoardTree(ctx, board.ID)
	require.NoError(t, err)
	require.Empty(t, tree.Columns[0].Tasks)
	require.Len(t, tree.Columns[1].Tasks, 1)
	require.Equal(t, task.ID, tree.Columns[1].Tasks[0].ID)
}

func TestMoveTaskMissingTarget(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, done := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Stuck", CreatedByID: owner.ID})
	require.NoError(t, err)

	_, err = s.MoveTask(ctx, task.ID, 9999, 0)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.MoveTask(ctx, 9999, done.ID, 0)
	require.ErrorIs(t, err, ErrNotFound)

	// The failed moves left the task where it was.
	got, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, todo.ID, got.ColumnID)
}

func TestDeleteColumnCascadesToTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Gone soon", CreatedByID: owner.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteColumn(ctx, todo.ID))

	_, err = s.GetTask(ctx, task.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserDeletionRestrictedByCreatedTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, _, todo, _ := setupBoard(t, s)

	author := createTestUser(t, s, "author@example.com", "Author")
	_, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Theirs", CreatedByID: author.ID})
	require.NoError(t, err)

	// created_by is ON DELETE RESTRICT: the delete must fail while the
	// task exists.
	_, err = s.db.Exec(`DELETE FROM users WHERE id = ?`, author.ID)
	require.Error(t, err)
}

func TestAssigneeDeletionClearsAssignment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	assignee := createTestUser(t, s, "assignee@example.com", "Assignee")
	task, err := s.CreateTask(ctx, todo.ID, NewTask{
		Title:        "Handed off",
		CreatedByID:  owner.ID,
		AssignedToID: &assignee.ID,
	})
	require.NoError(t, err)

	// assigned_to is ON DELETE SET NULL: the task survives unassigned.
	_, err = s.db.Exec(`DELETE FROM users WHERE id = ?`, assignee.ID)
	require.NoError(t, err)

	got, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Nil(t, got.AssignedToID)
}
