package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/game"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/testutils"
)

type fakePlayer struct {
	snap      game.Snapshot
	actions   []string
	allocated []models.Stat
	begun     *NewGame
	abandoned bool
	actErr    error
}

func (f *fakePlayer) Snapshot() game.Snapshot { return f.snap }

func (f *fakePlayer) Begin(_ context.Context, name string, race models.Race, class models.Class) error {
	f.begun = &NewGame{Name: name, Race: race, Class: class}
	return nil
}

func (f *fakePlayer) Act(_ context.Context, action string) error {
	f.actions = append(f.actions, action)
	return f.actErr
}

func (f *fakePlayer) Allocate(_ context.Context, stat models.Stat) error {
	f.allocated = append(f.allocated, stat)
	return nil
}

func (f *fakePlayer) Abandon(context.Context) error {
	f.abandoned = true
	return nil
}

func newPlaying() *fakePlayer {
	state := testutils.NewTestState()
	return &fakePlayer{snap: game.Snapshot{State: &state, Choices: []string{"Fight", "Flee"}}}
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestDigitPicksChoice(t *testing.T) {
	player := newPlaying()
	m := NewModel(player, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, turnProcessedMsg{}, msg)
	assert.Equal(t, []string{"Flee"}, player.actions)
}

func TestDigitOutOfRangeIsTyped(t *testing.T) {
	player := newPlaying()
	var m tea.Model = NewModel(player, nil)

	m = typeText(t, m, "7")

	assert.Empty(t, player.actions)
	assert.Equal(t, "7", m.(model).textInput.Value())
}

func TestEnterSubmitsAction(t *testing.T) {
	player := newPlaying()
	player.actErr = errors.Unavailable("model offline")
	var m tea.Model = NewModel(player, nil)

	m = typeText(t, m, "climb the tower")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	assert.Equal(t, []string{"climb the tower"}, player.actions)
	assert.Equal(t, "model offline", m.(model).status)
	assert.Empty(t, m.(model).textInput.Value())
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	player := newPlaying()
	player.snap.Loading = true
	var m tea.Model = NewModel(player, nil)

	m = typeText(t, m, "fight")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, player.actions)
}

func TestAllocCommand(t *testing.T) {
	player := newPlaying()
	var m tea.Model = NewModel(player, nil)

	m = typeText(t, m, "/alloc vit")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []models.Stat{models.StatVitality}, player.allocated)

	m = typeText(t, m, "/alloc luck")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, player.allocated, 1)
	assert.Contains(t, m.(model).status, "luck")
}

func TestNewCommandAbandons(t *testing.T) {
	player := newPlaying()
	var m tea.Model = NewModel(player, nil)

	m = typeText(t, m, "/new")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, player.abandoned)
	assert.True(t, m.(model).abandoned)
}

func TestViewShowsState(t *testing.T) {
	player := newPlaying()
	var m tea.Model = NewModel(player, nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "SUBARU")
	assert.Contains(t, view, "HP 80/100")
	assert.Contains(t, view, "#1")
	assert.Contains(t, view, "Flee")
	assert.Contains(t, view, "Distribute 3 stats")

	player.snap.State.IsGameOver = true
	assert.Contains(t, m.View(), "You have perished.")
}

func TestInitBeginsNewGame(t *testing.T) {
	player := &fakePlayer{}
	m := NewModel(player, &NewGame{Name: "Aqua", Race: models.RaceElf, Class: models.ClassPaladin})

	assert.Contains(t, m.View(), "Whispering to the Void")

	_ = m.begin(*m.newGame)()
	require.NotNil(t, player.begun)
	assert.Equal(t, "Aqua", player.begun.Name)
}
