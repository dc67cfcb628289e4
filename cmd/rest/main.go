package main

import (
	"context"
	"log"

	"notesphere-be/internal/bootstrap"
	"notesphere-be/internal/config"
	"notesphere-be/internal/server"
	"notesphere-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	db, err := database.Connect(context.Background(), cfg.Database.URL, cfg.Database.DBName)
	if err != nil {
		log.Panicf("Unable to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Printf("Mongo disconnect error: %v", err)
		}
	}()

	if err := db.EnsureIndexes(context.Background()); err != nil {
		log.Panicf("Unable to ensure indexes: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(db, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
