package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow-api/database"
)

// TagHandler handles global tags and task-tag association.
type TagHandler struct {
	store *database.Store
}

func NewTagHandler(store *database.Store) *TagHandler {
	return &TagHandler{store: store}
}

// List returns all tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.ListTags(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}

// Create makes a new global tag.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	tag, err := h.store.CreateTag(r.Context(), req.Name, req.Color)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tag)
}

// Delete removes a tag globally, detaching it from every task.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tagID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteTag(r.Context(), tagID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListForTask returns the tags attached to a task.
func (h *TagHandler) ListForTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	tags, err := h.store.ListTagsForTask(r.Context(), taskID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}

// AddToTask attaches a batch of tags. The batch is all-or-nothing; tags
// already attached are skipped without error.
func (h *TagHandler) AddToTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	var tagIDs []int64
	if err := json.NewDecoder(r.Body).Decode(&tagIDs); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	tags, err := h.store.AddTagsToTask(r.Context(), taskID, tagIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}

// RemoveFromTask detaches a batch of tags, ignoring ids not attached.
func (h *TagHandler) RemoveFromTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	var tagIDs []int64
	if err := json.NewDecoder(r.Body).Decode(&tagIDs); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.store.RemoveTagsFromTask(r.Context(), taskID, tagIDs); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
