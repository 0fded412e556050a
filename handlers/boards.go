package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow-api/database"
)

// BoardHandler handles board CRUD.
type BoardHandler struct {
	store *database.Store
}

func NewBoardHandler(store *database.Store) *BoardHandler {
	return &BoardHandler{store: store}
}

// List returns the boards the caller is a member of.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	boards, err := h.store.ListBoardsForUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boards)
}

// Create makes a new board owned by the caller. The owner membership row
// is written in the same transaction as the board.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	board, err := h.store.CreateBoard(r.Context(), req.Title, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, board)
}

// Get returns the full board hierarchy. Non-members get a 404, same as a
// missing board.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !requireMembership(w, r, h.store, boardID) {
		return
	}

	board, err := h.store.GetBoardTree(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// Update replaces the board title.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !requireMembership(w, r, h.store, boardID) {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	board, err := h.store.UpdateBoard(r.Context(), boardID, req.Title)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// Delete removes the board and everything under it.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !requireMembership(w, r, h.store, boardID) {
		return
	}

	if err := h.store.DeleteBoard(r.Context(), boardID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
