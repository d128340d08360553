// Package sqlitestore keeps the save in a SQLite key/value table.
package sqlitestore

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS saves (
	key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	saved_at INTEGER NOT NULL
)`

// Store provides SQLite-backed persistence for the save.
type Store struct {
	sqlDB *sql.DB
	key   string
}

// Open opens (and if needed creates) the database at path.
func Open(path, key string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}
	if key == "" {
		return nil, errors.InvalidArgument("save key is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "create saves table")
	}

	return &Store{sqlDB: sqlDB, key: key}, nil
}

func (s *Store) Save(ctx context.Context, save *models.SaveData) error {
	data, err := models.EncodeSave(save)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (key, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		s.key, string(data), save.SavedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return errors.Wrap(err, "upsert save")
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*models.SaveData, error) {
	var payload string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM saves WHERE key = ?`, s.key).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("no saved game").WithMeta("key", s.key)
		}
		return nil, errors.Wrap(err, "select save")
	}
	return models.DecodeSave([]byte(payload))
}

func (s *Store) Delete(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE key = ?`, s.key); err != nil {
		return errors.Wrap(err, "delete save")
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
