// Command seed fills the configured database with demo data.
package main

import (
	"flag"
	"log"

	"ticketx/internal/config"
	"ticketx/internal/database"
	"ticketx/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "number of users to create")
	numPosts := flag.Int("posts", 50, "number of posts to create")
	clean := flag.Bool("clean", false, "wipe existing data first")
	randSeed := flag.Uint64("seed", 0, "random seed (0 = random each run)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *clean,
		Seed:        *randSeed,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Done. All seeded accounts use password %q.", seed.SeedPassword)
}
