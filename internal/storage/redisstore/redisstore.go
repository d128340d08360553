// Package redisstore keeps the save as a single Redis string.
package redisstore

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

// Store reads and writes one key. The save never expires.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New wraps an existing client. The store takes ownership of client and
// closes it on Close.
func New(client redis.UniversalClient, key string) (*Store, error) {
	if client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}
	if key == "" {
		return nil, errors.InvalidArgument("save key is required")
	}
	return &Store{client: client, key: key}, nil
}

func (s *Store) Save(ctx context.Context, save *models.SaveData) error {
	data, err := models.EncodeSave(save)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to store save in redis", "key", s.key, "error", err)
		return errors.Wrap(err, "failed to store save in redis")
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*models.SaveData, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no saved game").WithMeta("key", s.key)
		}
		return nil, errors.Wrap(err, "failed to get save from redis")
	}
	return models.DecodeSave(data)
}

func (s *Store) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete save from redis")
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
