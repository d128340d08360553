// Package storage persists the single saved game.
package storage

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/storage/filestore"
	"github.com/tatianab/aetheria/internal/storage/redisstore"
	"github.com/tatianab/aetheria/internal/storage/sqlitestore"
	"github.com/tatianab/aetheria/internal/storage/supabasestore"
)

// Store reads and writes the whole game under one key.
type Store interface {
	// Save replaces the stored game.
	Save(ctx context.Context, save *models.SaveData) error

	// Load returns the stored game, or a NotFound error when there is none.
	Load(ctx context.Context) (*models.SaveData, error)

	// Delete removes the stored game. Deleting a missing game is not an error.
	Delete(ctx context.Context) error

	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendSQLite   Backend = "sqlite"
	BackendSupabase Backend = "supabase"
)

// Options selects and configures a backend.
type Options struct {
	Backend     Backend
	Key         string
	Dir         string
	RedisAddr   string
	SQLitePath  string
	SupabaseURL string
	SupabaseKey string
}

// Open builds the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	key := opts.Key
	if key == "" {
		key = models.DefaultSaveKey
	}

	slog.DebugContext(ctx, "opening save store", "backend", opts.Backend, "key", key)

	switch opts.Backend {
	case BackendFile, "":
		return filestore.New(opts.Dir, key)
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, errors.InvalidArgument("redis address is required")
		}
		client := goredis.NewClient(&goredis.Options{Addr: opts.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach redis")
		}
		return redisstore.New(client, key)
	case BackendSQLite:
		return sqlitestore.Open(opts.SQLitePath, key)
	case BackendSupabase:
		return supabasestore.Open(opts.SupabaseURL, opts.SupabaseKey, key)
	default:
		return nil, errors.InvalidArgumentf("unknown storage backend %q", opts.Backend)
	}
}
