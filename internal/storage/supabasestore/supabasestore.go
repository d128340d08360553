// Package supabasestore keeps the save in a Supabase (PostgREST) table.
//
// Expected table:
//
//	create table saves (
//	    key text primary key,
//	    payload text not null,
//	    saved_at timestamptz not null
//	);
package supabasestore

import (
	"context"
	"time"

	supa "github.com/supabase-community/supabase-go"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

const table = "saves"

type row struct {
	Key     string `json:"key"`
	Payload string `json:"payload"`
	SavedAt string `json:"saved_at"`
}

// Store upserts a single row keyed by the save key.
type Store struct {
	client *supa.Client
	key    string
}

// Open connects to the Supabase project at url.
func Open(url, apiKey, key string) (*Store, error) {
	if url == "" || apiKey == "" {
		return nil, errors.InvalidArgument("supabase url and key are required")
	}
	if key == "" {
		return nil, errors.InvalidArgument("save key is required")
	}

	client, err := supa.NewClient(url, apiKey, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to supabase")
	}
	return &Store{client: client, key: key}, nil
}

func (s *Store) Save(_ context.Context, save *models.SaveData) error {
	data, err := models.EncodeSave(save)
	if err != nil {
		return err
	}

	r := row{Key: s.key, Payload: string(data), SavedAt: save.SavedAt.UTC().Format(time.RFC3339)}
	if _, _, err := s.client.From(table).Insert(r, true, "key", "minimal", "").Execute(); err != nil {
		return errors.Wrap(err, "failed to upsert save")
	}
	return nil
}

func (s *Store) Load(_ context.Context) (*models.SaveData, error) {
	var rows []row
	if _, err := s.client.From(table).Select("payload", "", false).Eq("key", s.key).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "failed to select save")
	}
	if len(rows) == 0 {
		return nil, errors.NotFound("no saved game").WithMeta("key", s.key)
	}
	return models.DecodeSave([]byte(rows[0].Payload))
}

func (s *Store) Delete(_ context.Context) error {
	if _, _, err := s.client.From(table).Delete("minimal", "").Eq("key", s.key).Execute(); err != nil {
		return errors.Wrap(err, "failed to delete save")
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
