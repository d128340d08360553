package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/storage/filestore"
	"github.com/tatianab/aetheria/internal/testutils"
)

type FileStoreTestSuite struct {
	suite.Suite
	dir   string
	store *filestore.Store
	ctx   context.Context
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreTestSuite))
}

func (s *FileStoreTestSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "saves")
	store, err := filestore.New(s.dir, "slot")
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *FileStoreTestSuite) TestRoundTrip() {
	save := testutils.NewTestSave()
	s.Require().NoError(s.store.Save(s.ctx, save))

	s.Equal(filepath.Join(s.dir, "slot.json"), s.store.Path())
	_, err := os.Stat(s.store.Path())
	s.Require().NoError(err)

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(save.GameState, loaded.GameState)
	s.Equal(save.CurrentChoices, loaded.CurrentChoices)
	s.True(save.SavedAt.Equal(loaded.SavedAt))
}

func (s *FileStoreTestSuite) TestSaveOverwrites() {
	first := testutils.NewTestSave()
	s.Require().NoError(s.store.Save(s.ctx, first))

	second := testutils.NewTestSave()
	second.GameState.Character.Gold = 999
	second.CurrentChoices = []string{"Run"}
	s.Require().NoError(s.store.Save(s.ctx, second))

	loaded, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(999, loaded.GameState.Character.Gold)
	s.Equal([]string{"Run"}, loaded.CurrentChoices)

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *FileStoreTestSuite) TestLoadMissing() {
	_, err := s.store.Load(s.ctx)
	s.True(errors.IsNotFound(err))
}

func (s *FileStoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Save(s.ctx, testutils.NewTestSave()))
	s.Require().NoError(s.store.Delete(s.ctx))

	_, err := s.store.Load(s.ctx)
	s.True(errors.IsNotFound(err))

	s.NoError(s.store.Delete(s.ctx), "deleting twice is fine")
}

func (s *FileStoreTestSuite) TestNewRequiresKey() {
	_, err := filestore.New(s.dir, "")
	s.True(errors.IsInvalidArgument(err))
}
