package main

import (
	"context"
	"time"

	mongoMigration "smarthost/internal/migrations/mongo"
	"smarthost/pkg/client"
	"smarthost/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	cfg := config.Load(JobName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Mongo migration job")
	if err := run(cfg); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	clients := client.NewClient()
	if err := clients.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout); err != nil {
		return err
	}
	defer func() {
		if err := clients.Close(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	return mongoMigration.RunMigration(ctx, clients.Mongo, cfg.MongoDatabaseName, cfg.Log)
}
