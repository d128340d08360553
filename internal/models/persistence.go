package models

import (
	"encoding/json"
	"time"

	"github.com/tatianab/aetheria/internal/errors"
)

// DefaultSaveKey is the single key every store writes the game under.
const DefaultSaveKey = "chronicles-of-aetheria-save"

// SaveData is the blob written to persistence on every change.
type SaveData struct {
	GameState      GameState `json:"gameState" yaml:"game_state"`
	CurrentChoices []string  `json:"currentChoices" yaml:"current_choices"`
	SavedAt        time.Time `json:"savedAt" yaml:"saved_at"`
}

// EncodeSave serializes a save to JSON.
func EncodeSave(save *SaveData) ([]byte, error) {
	if save == nil {
		return nil, errors.InvalidArgument("save cannot be nil")
	}
	data, err := json.Marshal(save)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal save")
	}
	return data, nil
}

// DecodeSave parses a JSON save. A save written without choices loads
// with an empty list.
func DecodeSave(data []byte) (*SaveData, error) {
	var save SaveData
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal save")
	}
	if save.CurrentChoices == nil {
		save.CurrentChoices = []string{}
	}
	return &save, nil
}
