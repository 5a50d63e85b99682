// Package bootstrap establishes process-level runtime dependencies for the
// command binaries.
package bootstrap

import (
	"fmt"

	"vireo/internal/cache"
	"vireo/internal/config"
	"vireo/internal/database"
	"vireo/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates the database with generated users, posts and
	// comments. Meant for development environments.
	SeedDemoData bool
	SeedOptions  seed.Options
}

// InitRuntime connects to DB and Redis and optionally runs demo seeding.
// Seeding is explicit here rather than implicit in server construction, so
// tests and production never pick it up by accident.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Seed(db, opts.SeedOptions); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
