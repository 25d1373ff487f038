// Package bootstrap wires the shared runtime dependencies used by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	ApplySchema   bool
	SeedReference bool
}

// InitRuntime connects to the database and Redis, brings the schema up to date
// and loads the built-in genres and MPA ratings.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if opts.SeedReference {
		if err := seed.ReferenceData(db.WithContext(ctx)); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to seed reference data: %w", err)
		}
	}

	// nil when unreachable
	r := database.ConnectRedis(cfg.RedisURL)

	return db, r, nil
}
