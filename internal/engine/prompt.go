package engine

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

//go:embed prompts/system.txt
var systemPrompt string

//go:embed prompts/turn.txt
var turnPrompt string

var turnTemplate = template.Must(template.New("turn").Parse(turnPrompt))

type turnData struct {
	Phase  models.Phase
	Name   string
	Race   models.Race
	Class  models.Class
	Stats  models.Attributes
	Level  int
	Memory string
	Action string
	Recap  []string
}

func renderTurn(state models.GameState, action string, window int) (string, error) {
	c := state.Character
	data := turnData{
		Phase:  state.Phase,
		Name:   c.Name,
		Race:   c.Race,
		Class:  c.Class,
		Stats:  c.Stats,
		Level:  c.Level,
		Memory: strings.Join(state.WorldMemory, " | "),
		Action: action,
		Recap:  recap(state.History, window),
	}

	var buf bytes.Buffer
	if err := turnTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render turn prompt")
	}
	return buf.String(), nil
}

// recap renders the last window history entries as "Player:"/"DM:" lines.
func recap(history []models.LogEntry, window int) []string {
	if len(history) > window {
		history = history[len(history)-window:]
	}
	lines := make([]string, 0, len(history))
	for _, h := range history {
		speaker := "DM"
		if h.Role == models.RoleUser {
			speaker = "Player"
		}
		lines = append(lines, speaker+": "+h.Content)
	}
	return lines
}
