package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Discussed", CreatedByID: owner.ID})
	require.NoError(t, err)

	comment, err := s.CreateComment(ctx, task.ID, owner.ID, "first!")
	require.NoError(t, err)
	require.Equal(t, "Owner", comment.AuthorName)
	require.False(t, comment.CreatedAt.IsZero())

	updated, err := s.UpdateComment(ctx, comment.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)
	require.Equal(t, comment.AuthorID, updated.AuthorID)

	require.NoError(t, s.DeleteComment(ctx, comment.ID))
	_, err = s.GetComment(ctx, comment.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentsOrderedOldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Discussed", CreatedByID: owner.ID})
	require.NoError(t, err)

	first, err := s.CreateComment(ctx, task.ID, owner.ID, "one")
	require.NoError(t, err)
	second, err := s.CreateComment(ctx, task.ID, owner.ID, "two")
	require.NoError(t, err)

	comments, err := s.ListCommentsForTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, first.ID, comments[0].ID)
	require.Equal(t, second.ID, comments[1].ID)
}

func TestCreateCommentMissingTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, s, "owner@example.com", "Owner")

	_, err := s.CreateComment(ctx, 9999, owner.ID, "into the void")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.ListCommentsForTask(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTaskCascadesToComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, _, todo, _ := setupBoard(t, s)

	task, err := s.CreateTask(ctx, todo.ID, NewTask{Title: "Discussed", CreatedByID: owner.ID})
	require.NoError(t, err)
	comment, err := s.CreateComment(ctx, task.ID, owner.ID, "soon gone")
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	_, err = s.GetComment(ctx, comment.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
