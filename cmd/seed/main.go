// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numVideos := flag.Int("videos", 100, "Number of videos to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

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

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumVideos:   *numVideos,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
