// Package bootstrap wires shared process startup for the server and jobs.
package bootstrap

import (
	"errors"
	"fmt"

	"goodquestions/internal/cache"
	"goodquestions/internal/config"
	"goodquestions/internal/database"
	"goodquestions/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SystemAuthorName is the display name of the account that owns the weekly
// round questions. The account has no password and no Google identity, so it
// can never be signed into.
const SystemAuthorName = "Good Questions"

// Options control runtime initialization behavior.
type Options struct {
	ApplySchema bool
}

// InitRuntime connects to the database and Redis. The returned Redis client
// is nil when Redis is unreachable; callers degrade rather than fail.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: opts.ApplySchema})
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return db, cache.GetClient(), nil
}

// EnsureSystemAuthor finds or creates the system account used as the author
// of weekly round questions.
func EnsureSystemAuthor(db *gorm.DB) (*models.User, error) {
	var author models.User
	err := db.Where("display_name = ?", SystemAuthorName).First(&author).Error
	switch {
	case err == nil:
		return &author, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		author = models.User{
			DisplayName: SystemAuthorName,
			Email:       "weekly@goodquestions.local",
		}
		if err := db.Create(&author).Error; err != nil {
			return nil, fmt.Errorf("create system author: %w", err)
		}
		return &author, nil
	default:
		return nil, fmt.Errorf("look up system author: %w", err)
	}
}
