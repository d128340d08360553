// Package game holds the rules that turn dungeon master replies into game
// state, and the Session that owns a running game.
package game

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/pkg/clock"
	"github.com/tatianab/aetheria/internal/storage"
)

//go:generate mockgen -destination=mock/mock_dungeon_master.go -package=gamemock github.com/tatianab/aetheria/internal/game DungeonMaster

// DungeonMaster produces the next narrative beat for a player action.
type DungeonMaster interface {
	Respond(ctx context.Context, state models.GameState, action string) (models.DMResponse, error)
}

// IntroPrompt opens every new game.
const IntroPrompt = `You find yourself in an infinite expanse of white. Before you stands a nervous God with a clipboard. "Listen," he says, sweating. "My bad. Huge mistake. Reincarnation program... strictly intended for heroic deaths. You? You hit your head on a falling melon. I need to fix this. I'm sending you to Aetheria. Pick three gifts."`

// Config holds the Session dependencies.
type Config struct {
	DM    DungeonMaster
	Store storage.Store
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.DM == nil {
		return errors.InvalidArgument("dungeon master is required")
	}
	if c.Store == nil {
		return errors.InvalidArgument("store is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

// Snapshot is a copy of the session for rendering.
type Snapshot struct {
	State   *models.GameState
	Choices []string
	Loading bool
}

// Session owns the single running game. At most one dungeon master request
// is outstanding at a time.
type Session struct {
	dm    DungeonMaster
	store storage.Store
	clock clock.Clock

	mu      sync.Mutex
	state   *models.GameState
	choices []string
	loading bool
}

// NewSession creates an empty session. Call Begin or Resume to load a game.
func NewSession(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Session{
		dm:      cfg.DM,
		store:   cfg.Store,
		clock:   cfg.Clock,
		choices: []string{},
	}, nil
}

// Snapshot returns a copy of the current state, choices and loading flag.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Choices: append([]string{}, s.choices...),
		Loading: s.loading,
	}
	if s.state != nil {
		st := s.state.Clone()
		snap.State = &st
	}
	return snap
}

// Begin discards any saved game, creates a new character and asks the
// dungeon master for the opening scene.
func (s *Session) Begin(ctx context.Context, name string, race models.Race, class models.Class) error {
	state, err := models.NewGameState(name, race, class)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return errors.FailedPrecondition("the dungeon master is still speaking")
	}
	s.loading = true
	s.mu.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return errors.Wrap(err, "failed to clear previous save")
	}

	s.mu.Lock()
	s.state = &state
	s.choices = []string{}
	saveErr := s.persistLocked(ctx)
	s.mu.Unlock()

	slog.InfoContext(ctx, "new game started", "name", state.Character.Name, "race", race, "class", class)

	// The opening narration is not recorded as a player action.
	if err := s.exchange(ctx, state, IntroPrompt, false); err != nil {
		return err
	}
	return saveErr
}

// Resume replaces the session with the saved game.
func (s *Session) Resume(ctx context.Context) error {
	save, err := s.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load saved game")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return errors.FailedPrecondition("the dungeon master is still speaking")
	}
	state := save.GameState
	s.state = &state
	s.choices = save.CurrentChoices

	slog.InfoContext(ctx, "game resumed", "name", state.Character.Name, "saved_at", save.SavedAt)
	return nil
}

// Act sends a player action to the dungeon master and applies the reply.
// When the call fails the state is left exactly as it was.
func (s *Session) Act(ctx context.Context, action string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return errors.InvalidArgument("action cannot be empty")
	}

	s.mu.Lock()
	switch {
	case s.state == nil:
		s.mu.Unlock()
		return errors.FailedPrecondition("no game in progress")
	case s.state.IsGameOver:
		s.mu.Unlock()
		return errors.FailedPrecondition("the game is over")
	case s.loading:
		s.mu.Unlock()
		return errors.FailedPrecondition("the dungeon master is still speaking")
	}
	s.loading = true
	before := s.state.Clone()
	s.mu.Unlock()

	return s.exchange(ctx, before, action, true)
}

// exchange runs one dungeon master call. The caller must have set loading.
func (s *Session) exchange(ctx context.Context, before models.GameState, action string, record bool) error {
	res, err := s.dm.Respond(ctx, before, action)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		slog.ErrorContext(ctx, "dungeon master request failed", "error", err)
		return errors.Wrap(err, "dungeon master request failed")
	}
	if s.state == nil {
		// Abandoned while the request was in flight.
		return nil
	}

	current := s.state.Clone()
	if record {
		current.History = append(current.History, models.LogEntry{Role: models.RoleUser, Content: action})
	}
	next := Apply(current, res)
	s.state = &next
	s.choices = append([]string{}, res.Choices...)

	if next.IsGameOver {
		slog.InfoContext(ctx, "character perished", "name", next.Character.Name, "level", next.Character.Level)
	}
	return s.persistLocked(ctx)
}

// Allocate spends a stat point. It is allowed while a request is in flight;
// the reply is applied on top of the allocation.
func (s *Session) Allocate(ctx context.Context, stat models.Stat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return errors.FailedPrecondition("no game in progress")
	}
	next, err := Allocate(*s.state, stat)
	if err != nil {
		return err
	}
	s.state = &next
	return s.persistLocked(ctx)
}

// Abandon deletes the saved game and clears the session.
func (s *Session) Abandon(ctx context.Context) error {
	s.mu.Lock()
	s.state = nil
	s.choices = []string{}
	s.mu.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete save")
	}
	slog.InfoContext(ctx, "save deleted")
	return nil
}

// persistLocked writes the whole session. s.mu must be held.
func (s *Session) persistLocked(ctx context.Context) error {
	if s.state == nil {
		return nil
	}
	save := &models.SaveData{
		GameState:      s.state.Clone(),
		CurrentChoices: append([]string{}, s.choices...),
		SavedAt:        s.clock.Now(),
	}
	if err := s.store.Save(ctx, save); err != nil {
		slog.ErrorContext(ctx, "failed to save game", "error", err)
		return errors.Wrap(err, "failed to save game")
	}
	return nil
}
