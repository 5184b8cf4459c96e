package main

import (
	"log"
	"os"

	"abstractportal-backend/handlers"
	"abstractportal-backend/sanity"
	"abstractportal-backend/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Initialize content store client
	store, err := sanity.NewClientFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize content store client: %v", err)
	}
	log.Println("Content store client initialized")

	// Initialize submission archive (disabled unless ARCHIVE_TYPE is set)
	archive, err := storage.NewArchiveFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize archive: %v", err)
	}
	if archive != nil {
		log.Println("Submission archive enabled")
	}

	// Initialize handlers and router
	submissionHandler := handlers.NewSubmissionHandler(store, archive)
	r := handlers.NewRouter(submissionHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
