package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskflow/taskflow-api/database"
)

// TaskHandler handles task CRUD and moves.
type TaskHandler struct {
	store *database.Store
}

func NewTaskHandler(store *database.Store) *TaskHandler {
	return &TaskHandler{store: store}
}

type taskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	SortOrder    float64    `json:"sortOrder"`
	DueDate      *time.Time `json:"dueDate"`
	AssignedToID *string    `json:"assignedToId"`
	IsCompleted  bool       `json:"isCompleted"`
}

// Create adds a task to a column. The creator is the authenticated caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	columnID, ok := pathID(w, r, "columnId")
	if !ok {
		return
	}
	claims, ok := callerFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	task, err := h.store.CreateTask(r.Context(), columnID, database.NewTask{
		Title:        req.Title,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
		DueDate:      req.DueDate,
		CreatedByID:  claims.UserID,
		AssignedToID: req.AssignedToID,
		IsCompleted:  req.IsCompleted,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// Get returns a single task with tags and comments.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.store.GetTask(r.Context(), taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Update replaces the task's mutable fields.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	task, err := h.store.UpdateTask(r.Context(), taskID, database.TaskUpdate{
		Title:        req.Title,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
		IsCompleted:  req.IsCompleted,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Delete removes the task; comments go with it, tags are detached.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteTask(r.Context(), taskID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move reassigns the task's column and sort order atomically.
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		TargetColumnID int64   `json:"targetColumnId"`
		SortOrder      float64 `json:"sortOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	task, err := h.store.MoveTask(r.Context(), taskID, req.TargetColumnID, req.SortOrder)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}
