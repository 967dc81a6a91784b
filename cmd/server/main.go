package main

import (
	"log"
	"net/http"
	"os"

	"open_toilet/internal/config"
	"open_toilet/internal/logger"
	"open_toilet/internal/middleware"
	"open_toilet/internal/migrations"
	"open_toilet/internal/routes"
	"open_toilet/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	db := config.InitDB()

	// Schema must be current before any request is served
	if err := migrations.Run(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Setup Gin router against the data store
	r := routes.SetupRouter(store.New(db))

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
