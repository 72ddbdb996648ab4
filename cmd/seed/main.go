package main

import (
	"context"
	"time"

	"smarthost/internal/seed"
	"smarthost/pkg/client"
	"smarthost/pkg/config"
)

const JobName = "seed"

func main() {
	cfg := config.Load(JobName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	summary, err := run(cfg)
	if err != nil {
		cfg.Log.Fatal("Seed failed", "error", err)
	}
	cfg.Log.Info("Seed completed successfully",
		"users", summary.Users,
		"amenities", summary.Amenities,
		"properties", summary.Properties,
	)
}

func run(cfg *config.Config) (*seed.Summary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clients := client.NewClient()
	if err := clients.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		return nil, err
	}
	defer func() {
		if err := clients.Close(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	seeder := seed.NewSeeder(clients.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	return seeder.Run(ctx)
}
