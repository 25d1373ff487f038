// Command main runs the database seeder for Filmorate.
package main

import (
	"context"
	"flag"
	"log"

	"filmorate/internal/bootstrap"
	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numFilms := flag.Int("films", 100, "Number of films to create")
	likes := flag.Int("likes", 15, "Maximum likes per film")
	friends := flag.Int("friends", 8, "Maximum friends per user")
	shouldClean := flag.Bool("clean", true, "Clear users and films before seeding")
	fakerSeed := flag.Int64("seed", 0, "Fake data seed (0 picks a random one)")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing it")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d films, clean=%v, dry-run=%v\n", *numUsers, *numFilms, *shouldClean, *dryRun)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{ApplySchema: true, SeedReference: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() { _ = database.Close(db) }()
	if rdb != nil {
		_ = rdb.Close()
	}

	s := seed.NewSeeder(db, seed.SeedOptions{Seed: *fakerSeed, DryRun: *dryRun})
	res, err := s.SeedCatalog(ctx, seed.Options{
		NumUsers:       *numUsers,
		NumFilms:       *numFilms,
		LikesPerFilm:   *likes,
		FriendsPerUser: *friends,
		ShouldClean:    *shouldClean,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d films, %d likes, %d friend edges.", len(res.Users), len(res.Films), res.Likes, res.Friends)
}
