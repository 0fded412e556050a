package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taskflow/taskflow-api/database"
)

// MemberHandler handles board membership.
type MemberHandler struct {
	store *database.Store
}

func NewMemberHandler(store *database.Store) *MemberHandler {
	return &MemberHandler{store: store}
}

// Add invites a user to the board. The identifier may be a user id or an
// email address.
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}
	if !requireMembership(w, r, h.store, boardID) {
		return
	}

	var req struct {
		Identifier string `json:"identifier"`
		Role       string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Identifier == "" {
		http.Error(w, "identifier is required", http.StatusBadRequest)
		return
	}

	role := req.Role
	if role == "" {
		role = database.RoleMember
	}
	if role != database.RoleMember && role != database.RoleAdmin && role != database.RoleOwner {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	user, err := h.resolveUser(r, req.Identifier)
	if err != nil {
		respondError(w, err)
		return
	}

	member, err := h.store.AddMember(r.Context(), boardID, user.ID, role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// Remove revokes a user's membership. The board owner's membership cannot
// be removed.
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}
	if !requireMembership(w, r, h.store, boardID) {
		return
	}
	userID := mux.Vars(r)["userId"]

	board, err := h.store.GetBoard(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	if board.OwnerID == userID {
		http.Error(w, "cannot remove the board owner", http.StatusForbidden)
		return
	}

	if err := h.store.RemoveMember(r.Context(), boardID, userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns the board's members with display fields.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}
	if !requireMembership(w, r, h.store, boardID) {
		return
	}

	members, err := h.store.ListMembers(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) resolveUser(r *http.Request, identifier string) (*database.User, error) {
	if _, err := uuid.Parse(identifier); err == nil {
		return h.store.GetUserByID(r.Context(), identifier)
	}
	return h.store.GetUserByEmail(r.Context(), identifier)
}
