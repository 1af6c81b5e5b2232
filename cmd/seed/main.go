// Command seed runs the database seeder for Good Questions.
package main

import (
	"flag"
	"log"

	"goodquestions/internal/bootstrap"
	"goodquestions/internal/config"
	"goodquestions/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numDays := flag.Int("days", 7, "Days of daily questions to backfill")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d days of questions, clean=%v\n", *numUsers, *numDays, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, cfg.Location(), seed.Options{
		NumUsers:    *numUsers,
		NumDays:     *numDays,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✅ Seeding complete. All accounts use password:", seed.SeedPassword)
}
