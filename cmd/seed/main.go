// Command main runs the demo data seeder for Vireo.
package main

import (
	"flag"
	"log"

	"vireo/internal/bootstrap"
	"vireo/internal/config"
	"vireo/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 120, "Number of posts to create")
	maxComments := flag.Int("max-comments", 5, "Maximum comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Skip bcrypt hashing (dev-only throwaway data)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, _, err = bootstrap.InitRuntime(cfg, bootstrap.Options{
		SeedDemoData: true,
		SeedOptions: seed.Options{
			NumUsers:    *numUsers,
			NumPosts:    *numPosts,
			MaxComments: *maxComments,
			ShouldClean: *shouldClean,
			SkipBcrypt:  *fast,
		},
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All seeded users have the password: SeededPass12!")
}
