// Package testutils provides fixtures and helpers shared by package tests.
package testutils

import (
	"time"

	"github.com/tatianab/aetheria/internal/models"
)

// SavedAt is the timestamp every fixture save carries.
var SavedAt = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// NewTestState returns a mid-game state in the alive phase.
func NewTestState() models.GameState {
	return models.GameState{
		Character: models.Character{
			Name:       "Subaru",
			Race:       models.RaceHuman,
			Class:      models.ClassRogue,
			Level:      2,
			HP:         80,
			MaxHP:      100,
			MP:         30,
			MaxMP:      50,
			XP:         40,
			Gold:       12,
			Inventory:  []string{"convenience store bag"},
			Stats:      models.Attributes{Str: 10, Agi: 12, Int: 10, Vit: 11},
			StatPoints: 3,
		},
		History: []models.LogEntry{
			{Role: models.RoleAssistant, Content: "The God apologises."},
			{Role: models.RoleUser, Content: "I ask for Return by Death."},
		},
		WorldMemory: []string{
			"Died tragically but ridiculously on Earth. Soullessly adrift in the Void.",
			"Obtained the 'Return by Death' boon from God",
			"Obtained the 'Mana Well' boon from God",
		},
		Phase: models.PhaseAlive,
	}
}

// NewTestSave wraps NewTestState in a save envelope.
func NewTestSave() *models.SaveData {
	return &models.SaveData{
		GameState:      NewTestState(),
		CurrentChoices: []string{"Fight", "Sneak", "Bluff", "Cast"},
		SavedAt:        SavedAt,
	}
}
