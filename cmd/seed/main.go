// Command main runs the database seeder for Chronicle.
package main

import (
	"flag"
	"log"

	"chronicle/internal/bootstrap"
	"chronicle/internal/config"
	"chronicle/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numGalleries := flag.Int("galleries", 10, "Number of galleries to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d posts, %d galleries, clean=%v\n",
		*numUsers, *numPosts, *numGalleries, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		NumPosts:     *numPosts,
		NumGalleries: *numGalleries,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
}
