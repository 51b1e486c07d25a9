package main

import (
	"context"
	"flag"
	"time"

	"transit-dashboard/config"
	"transit-dashboard/database"
	appLogger "transit-dashboard/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	appLogger.Initialize()

	cfg := config.MustLoadConfig()
	opts := database.DefaultSeedOptions(time.Now())

	var (
		path = flag.String("db", cfg.Database.Path, "SQLite database file")
		seed = flag.Int64("seed", opts.Seed, "Random seed")
	)
	flag.IntVar(&opts.Users, "users", opts.Users, "Number of users")
	flag.IntVar(&opts.Days, "days", opts.Days, "Days of history")
	flag.IntVar(&opts.SearchesPerDay, "searches", opts.SearchesPerDay, "Searches per day")
	flag.IntVar(&opts.ComplaintsPerDay, "complaints", opts.ComplaintsPerDay, "Complaints per day")
	flag.IntVar(&opts.Vehicles, "vehicles", opts.Vehicles, "Live vehicles")
	flag.Parse()
	opts.Seed = *seed

	cfg.Database.Path = *path
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.Seed(ctx, db, opts); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	log.Info().
		Str("path", *path).
		Int("users", opts.Users).
		Int("days", opts.Days).
		Int64("seed", opts.Seed).
		Msg("Database seeded")
}
