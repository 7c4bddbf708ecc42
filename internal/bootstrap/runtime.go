// Package bootstrap wires shared runtime dependencies for the command
// binaries.
package bootstrap

import (
	"fmt"
	"strings"

	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates a small development dataset after connecting.
	// Refused outside the development environment.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if !strings.EqualFold(cfg.Env, "development") {
			return nil, nil, fmt.Errorf("demo seeding is only allowed in development (APP_ENV=%s)", cfg.Env)
		}
		if err := seed.Seed(db, seed.Options{
			NumUsers:     15,
			NumPosts:     40,
			NumGalleries: 5,
			ShouldClean:  false,
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
