// Command migrate applies the database schema.
package main

import (
	"log"

	"vidtube/internal/config"
	"vidtube/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, cfg); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema migrated")
}
