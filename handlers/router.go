package handlers

import (
	"github.com/gorilla/mux"

	"github.com/taskflow/taskflow-api/database"
	"github.com/taskflow/taskflow-api/services"
)

// NewRouter wires every endpoint. Register and login are public; the rest
// sit behind the bearer-token middleware.
func NewRouter(store *database.Store, authService *services.AuthService) *mux.Router {
	authHandler := NewAuthHandler(authService)
	boardHandler := NewBoardHandler(store)
	memberHandler := NewMemberHandler(store)
	columnHandler := NewColumnHandler(store)
	taskHandler := NewTaskHandler(store)
	commentHandler := NewCommentHandler(store)
	tagHandler := NewTagHandler(store)

	r := mux.NewRouter()

	// Auth routes (public)
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Everything else requires a valid bearer token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(NewAuthMiddleware(authService).Auth)

	// Boards
	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{id}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{id}", boardHandler.Update).Methods("PUT")
	api.HandleFunc("/boards/{id}", boardHandler.Delete).Methods("DELETE")

	// Board membership
	api.HandleFunc("/boards/{boardId}/members", memberHandler.List).Methods("GET")
	api.HandleFunc("/boards/{boardId}/members", memberHandler.Add).Methods("POST")
	api.HandleFunc("/boards/{boardId}/members/{userId}", memberHandler.Remove).Methods("DELETE")

	// Columns
	api.HandleFunc("/boards/{boardId}/columns", columnHandler.Create).Methods("POST")
	api.HandleFunc("/columns/{id}", columnHandler.Update).Methods("PUT")
	api.HandleFunc("/columns/{id}", columnHandler.Delete).Methods("DELETE")

	// Tasks
	api.HandleFunc("/columns/{columnId}/tasks", taskHandler.Create).Methods("POST")
	api.HandleFunc("/tasks/{id}", taskHandler.Get).Methods("GET")
	api.HandleFunc("/tasks/{id}", taskHandler.Update).Methods("PUT")
	api.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods("DELETE")
	api.HandleFunc("/tasks/{id}/move", taskHandler.Move).Methods("PUT")

	// Comments
	api.HandleFunc("/tasks/{taskId}/comments", commentHandler.List).Methods("GET")
	api.HandleFunc("/tasks/{taskId}/comments", commentHandler.Create).Methods("POST")
	api.HandleFunc("/comments/{id}", commentHandler.Update).Methods("PUT")
	api.HandleFunc("/comments/{id}", commentHandler.Delete).Methods("DELETE")

	// Tags
	api.HandleFunc("/tags", tagHandler.List).Methods("GET")
	api.HandleFunc("/tags", tagHandler.Create).Methods("POST")
	api.HandleFunc("/tags/{id}", tagHandler.Delete).Methods("DELETE")
	api.HandleFunc("/tasks/{taskId}/tags", tagHandler.ListForTask).Methods("GET")
	api.HandleFunc("/tasks/{taskId}/tags", tagHandler.AddToTask).Methods("POST")
	api.HandleFunc("/tasks/{taskId}/tags", tagHandler.RemoveFromTask).Methods("DELETE")

	return r
}
