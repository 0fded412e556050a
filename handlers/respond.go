package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskflow/taskflow-api/database"
	"github.com/taskflow/taskflow-api/services"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the store and service sentinels onto HTTP statuses.
// Unknown errors are logged and reported as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, database.ErrConflict), errors.Is(err, services.ErrEmailTaken):
		http.Error(w, "conflict", http.StatusConflict)
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// pathID parses an integer path variable. Returns false after writing a
// 404: a malformed id can never reference an existing row.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// requireMembership writes a 404 unless the caller is a member of the
// board. Absence of membership is indistinguishable from a missing board
// so board existence is not leaked.
func requireMembership(w http.ResponseWriter, r *http.Request, store *database.Store, boardID int64) bool {
	claims, ok := callerFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}

	hasAccess, err := store.HasAccess(r.Context(), boardID, claims.UserID)
	if err != nil {
		respondError(w, err)
		return false
	}
	if !hasAccess {
		http.Error(w, "not found", http.StatusNotFound)
		return false
	}
	return true
}
