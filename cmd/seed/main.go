// Command main runs the database seeder for Likewire.
package main

import (
	"flag"
	"log"

	"likewire/internal/config"
	"likewire/internal/database"
	"likewire/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numLikes := flag.Int("likes", 800, "Number of likes to spread across posts")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeder preset (e.g. Standard)")
	presetFile := flag.String("preset-file", "", "YAML file with additional presets")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		NumLikes:    *numLikes,
		ShouldClean: *shouldClean,
	}
	if *preset != "" {
		presets, err := seed.LoadPresets(*presetFile)
		if err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
		p, err := seed.FindPreset(presets, *preset)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Applying preset %q (ignoring count flags)", p.Name)
		opts = p.Options()
	}

	s := seed.NewSeeder(db, opts)
	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All seeded users have the password: password123")
}
