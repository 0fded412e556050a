package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow-api/database"
)

// CommentHandler handles task comments.
type CommentHandler struct {
	store *database.Store
}

func NewCommentHandler(store *database.Store) *CommentHandler {
	return &CommentHandler{store: store}
}

// Create adds a comment authored by the caller.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	claims, ok := callerFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.store.CreateComment(r.Context(), taskID, claims.UserID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// List returns a task's comments oldest-first.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	comments, err := h.store.ListCommentsForTask(r.Context(), taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// Update replaces a comment's content.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.store.UpdateComment(r.Context(), commentID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// Delete removes a comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteComment(r.Context(), commentID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
