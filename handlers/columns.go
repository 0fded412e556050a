package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow-api/database"
)

// ColumnHandler handles column CRUD.
type ColumnHandler struct {
	store *database.Store
}

func NewColumnHandler(store *database.Store) *ColumnHandler {
	return &ColumnHandler{store: store}
}

// Create adds a column to a board.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}

	var req struct {
		Title     string  `json:"title"`
		SortOrder float64 `json:"sortOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	column, err := h.store.CreateColumn(r.Context(), boardID, req.Title, req.SortOrder)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, column)
}

// Update replaces the column's title and sort order.
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	columnID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Title     string  `json:"title"`
		SortOrder float64 `json:"sortOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	column, err := h.store.UpdateColumn(r.Context(), columnID, req.Title, req.SortOrder)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, column)
}

// Delete removes the column and its tasks.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	columnID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteColumn(r.Context(), columnID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
