// Package filestore keeps the save as a JSON file on local disk.
package filestore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

// DefaultDir is used when no directory is configured.
const DefaultDir = ".saves"

// Store writes <dir>/<key>.json.
type Store struct {
	path string
}

// New returns a Store for key under dir.
func New(dir, key string) (*Store, error) {
	if key == "" {
		return nil, errors.InvalidArgument("save key is required")
	}
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{path: filepath.Join(dir, key+".json")}, nil
}

// Path is the file the save is written to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Save(_ context.Context, save *models.SaveData) error {
	data, err := models.EncodeSave(save)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "failed to create save directory")
	}

	// Write beside the target and rename so a crash never leaves half a save.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".save-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp save")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write save")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close save")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "failed to replace save")
	}
	return nil
}

func (s *Store) Load(_ context.Context) (*models.SaveData, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("no saved game").WithMeta("path", s.path)
		}
		return nil, errors.Wrap(err, "failed to read save")
	}
	return models.DecodeSave(data)
}

func (s *Store) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete save")
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
