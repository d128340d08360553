package engine

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

// FallbackNarration is shown when the model's reply cannot be used.
const FallbackNarration = "The voice of the DM wavers as the reality glitches..."

// Fallback is the neutral reply substituted for a malformed payload.
func Fallback() models.DMResponse {
	return models.DMResponse{
		Narration: FallbackNarration,
		Choices:   []string{"Try again"},
	}
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"narration":    {Type: genai.TypeString},
		"choices":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"hpChange":     {Type: genai.TypeNumber},
		"mpChange":     {Type: genai.TypeNumber},
		"xpGain":       {Type: genai.TypeNumber},
		"goldGain":     {Type: genai.TypeNumber},
		"newItem":      {Type: genai.TypeString},
		"updateMemory": {Type: genai.TypeString},
	},
	Required: []string{"narration", "choices", "hpChange", "mpChange", "xpGain", "goldGain"},
}

// wireResponse mirrors the schema. Numbers are declared as NUMBER, so the
// model may send fractions.
type wireResponse struct {
	Narration    string   `json:"narration"`
	Choices      []string `json:"choices"`
	HPChange     float64  `json:"hpChange"`
	MPChange     float64  `json:"mpChange"`
	XPGain       float64  `json:"xpGain"`
	GoldGain     float64  `json:"goldGain"`
	NewItem      string   `json:"newItem"`
	UpdateMemory string   `json:"updateMemory"`
}

// ParseResponse decodes the model's JSON reply.
func ParseResponse(text string) (models.DMResponse, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return models.DMResponse{}, errors.InvalidArgument("empty DM response")
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return models.DMResponse{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed DM response")
	}
	narration := strings.TrimSpace(wire.Narration)
	if narration == "" {
		return models.DMResponse{}, errors.InvalidArgument("DM response has no narration")
	}

	choices := make([]string, 0, len(wire.Choices))
	for _, c := range wire.Choices {
		if c = strings.TrimSpace(c); c != "" {
			choices = append(choices, c)
		}
	}

	return models.DMResponse{
		Narration:    narration,
		Choices:      choices,
		HPChange:     round(wire.HPChange),
		MPChange:     round(wire.MPChange),
		XPGain:       round(wire.XPGain),
		GoldGain:     round(wire.GoldGain),
		NewItem:      strings.TrimSpace(wire.NewItem),
		UpdateMemory: strings.TrimSpace(wire.UpdateMemory),
	}, nil
}

// MaxDelta bounds every numeric field of a reply.
const MaxDelta = 1_000_000

// round converts a model number to an int within ±MaxDelta.
func round(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(-MaxDelta, math.Min(MaxDelta, f))))
}
