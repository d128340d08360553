package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/game"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/testutils"
)

var _ game.DungeonMaster = (*Engine)(nil)

type fakeModel struct {
	prompts []string
	reply   *genai.GenerateContentResponse
	err     error
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if txt, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(txt))
		}
	}
	return f.reply, f.err
}

func textReply(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestRespond(t *testing.T) {
	model := &fakeModel{reply: textReply(
		`{"narration":"You kick the door off its hinges.","choices":["Charge","Sneak","Bluff","Fireball"],`,
		`"hpChange":-3,"mpChange":0,"xpGain":20,"goldGain":4,"newItem":"Door Handle"}`,
	)}
	eng := newEngine(model, 0)

	res, err := eng.Respond(context.Background(), testutils.NewTestState(), "Kick the door")
	require.NoError(t, err)

	assert.Equal(t, models.DMResponse{
		Narration: "You kick the door off its hinges.",
		Choices:   []string{"Charge", "Sneak", "Bluff", "Fireball"},
		HPChange:  -3,
		XPGain:    20,
		GoldGain:  4,
		NewItem:   "Door Handle",
	}, res)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "Isekai Phase: alive")
	assert.Contains(t, prompt, "Player Name: Subaru")
	assert.Contains(t, prompt, "Class: Human Rogue")
	assert.Contains(t, prompt, "[STR: 10, AGI: 12, INT: 10, VIT: 11]")
	assert.Contains(t, prompt, "Level: 2")
	assert.Contains(t, prompt, "Soullessly adrift in the Void. | Obtained the 'Return by Death' boon from God")
	assert.Contains(t, prompt, "[PLAYER ACTION]\nKick the door")
	assert.Contains(t, prompt, "DM: The God apologises.\nPlayer: I ask for Return by Death.")
}

func TestRespondMalformedFallsBack(t *testing.T) {
	testCases := []struct {
		name  string
		reply *genai.GenerateContentResponse
	}{
		{name: "not json", reply: textReply("Once upon a time...")},
		{name: "truncated", reply: textReply(`{"narration":"You`)},
		{name: "wrong types", reply: textReply(`{"narration":"x","choices":"run","hpChange":0,"mpChange":0,"xpGain":0,"goldGain":0}`)},
		{name: "no narration", reply: textReply(`{"choices":["a"],"hpChange":-5,"mpChange":0,"xpGain":0,"goldGain":0}`)},
		{name: "no candidates", reply: &genai.GenerateContentResponse{}},
		{name: "nil content", reply: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eng := newEngine(&fakeModel{reply: tc.reply}, 0)

			res, err := eng.Respond(context.Background(), testutils.NewTestState(), "Look around")
			require.NoError(t, err)

			assert.Equal(t, FallbackNarration, res.Narration)
			assert.Equal(t, []string{"Try again"}, res.Choices)
			assert.Zero(t, res.HPChange)
			assert.Zero(t, res.MPChange)
			assert.Zero(t, res.XPGain)
			assert.Zero(t, res.GoldGain)
			assert.Empty(t, res.NewItem)
			assert.Empty(t, res.UpdateMemory)
		})
	}
}

func TestRespondCallFailure(t *testing.T) {
	eng := newEngine(&fakeModel{err: fmt.Errorf("quota exceeded")}, 0)

	_, err := eng.Respond(context.Background(), testutils.NewTestState(), "Look around")
	assert.True(t, errors.IsUnavailable(err))
}

func TestParseResponse(t *testing.T) {
	res, err := ParseResponse("```json\n" + `{"narration":"  Coins glitter. ","choices":["Take", " ", "Leave"],"hpChange":2.6,"mpChange":-1.4,"xpGain":15,"goldGain":10.5,"updateMemory":" Robbed the dragon "}` + "\n```")
	require.NoError(t, err)

	assert.Equal(t, "Coins glitter.", res.Narration)
	assert.Equal(t, []string{"Take", "Leave"}, res.Choices)
	assert.Equal(t, 3, res.HPChange)
	assert.Equal(t, -1, res.MPChange)
	assert.Equal(t, 15, res.XPGain)
	assert.Equal(t, 11, res.GoldGain)
	assert.Equal(t, "Robbed the dragon", res.UpdateMemory)

	_, err = ParseResponse("   ")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestParseResponseBoundsNumbers(t *testing.T) {
	res, err := ParseResponse(`{"narration":"The goddess overflows with kindness.","choices":["Thank her"],"hpChange":1e30,"mpChange":-1e30,"xpGain":1e19,"goldGain":1e19}`)
	require.NoError(t, err)

	assert.Equal(t, MaxDelta, res.HPChange)
	assert.Equal(t, -MaxDelta, res.MPChange)
	assert.Equal(t, MaxDelta, res.XPGain)
	assert.Equal(t, MaxDelta, res.GoldGain)

	state := testutils.NewTestState()
	next := game.Apply(state, res)
	assert.False(t, next.IsGameOver, "a heal never kills")
	assert.Equal(t, next.Character.MaxHP, next.Character.HP)
	assert.Equal(t, state.Character.Gold+MaxDelta, next.Character.Gold)
	assert.Equal(t, state.Character.Level+(state.Character.XP+MaxDelta)/game.XPPerLevel, next.Character.Level)
}

func TestRecapWindow(t *testing.T) {
	var history []models.LogEntry
	for i := 0; i < 20; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.LogEntry{Role: role, Content: fmt.Sprintf("entry %d", i)})
	}

	lines := recap(history, DefaultHistoryWindow)
	require.Len(t, lines, 12)
	assert.Equal(t, "Player: entry 8", lines[0])
	assert.Equal(t, "DM: entry 19", lines[11])

	assert.Empty(t, recap(nil, DefaultHistoryWindow))
}

func TestRenderTurnEmptyHistory(t *testing.T) {
	state, err := models.NewGameState("Aqua", models.RaceElf, models.ClassPaladin)
	require.NoError(t, err)

	prompt, err := renderTurn(state, game.IntroPrompt, DefaultHistoryWindow)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Isekai Phase: death")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "[NARRATIVE RECAP]"))
}

func TestSchemaRequiresCoreFields(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"narration", "choices", "hpChange", "mpChange", "xpGain", "goldGain"},
		responseSchema.Required,
	)
	assert.Len(t, responseSchema.Properties, 8)
	assert.NotEmpty(t, systemPrompt)
}
