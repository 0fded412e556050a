package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/cors"

	"github.com/taskflow/taskflow-api/database"
	"github.com/taskflow/taskflow-api/handlers"
	"github.com/taskflow/taskflow-api/services"
)

func main() {
	// Load environment variables from .env file if present
	if err := LoadEnv(".env"); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./taskflow.db"
	}
	db, err := database.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := database.NewStore(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-default-secret-key-change-in-production"
	}
	tokenTTL := 72 * time.Hour
	if hours, err := strconv.Atoi(os.Getenv("TOKEN_TTL_HOURS")); err == nil && hours > 0 {
		tokenTTL = time.Duration(hours) * time.Hour
	}
	authService := services.NewAuthService(store, []byte(jwtSecret), tokenTTL)

	// Setup router
	r := handlers.NewRouter(store, authService)

	// Static file server for the built frontend
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./public")))

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, change to your domain
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(server.ListenAndServe())
}
