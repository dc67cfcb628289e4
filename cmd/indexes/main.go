package main

import (
	"context"
	"log"

	"notesphere-be/internal/config"
	"notesphere-be/pkg/database"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.DBName)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}
	defer db.Disconnect(ctx)

	log.Println("Starting index creation...")
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Error: Failed to create indexes: %v", err)
	}
	log.Println("✅ Indexes are in place")
}
