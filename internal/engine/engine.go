package engine

import (
	"context"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gemini-2.5-pro"
	// DefaultHistoryWindow is how many recent history entries go into a prompt.
	DefaultHistoryWindow = 12
)

// generator is the slice of *genai.GenerativeModel the engine needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Engine is the dungeon master backed by Gemini.
type Engine struct {
	client        *genai.Client
	model         generator
	historyWindow int
}

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	Model         string
	HistoryWindow int
}

func NewEngine(ctx context.Context, apiKey string, opts Options) (*Engine, error) {
	if apiKey == "" {
		return nil, errors.InvalidArgument("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create gemini client")
	}

	name := opts.Model
	if name == "" {
		name = DefaultModel
	}
	model := client.GenerativeModel(name)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema

	e := newEngine(model, opts.HistoryWindow)
	e.client = client
	return e, nil
}

func newEngine(model generator, historyWindow int) *Engine {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Engine{
		model:         model,
		historyWindow: historyWindow,
	}
}

func (e *Engine) Close() {
	if e.client != nil {
		e.client.Close()
	}
}

// Respond asks the model for the next beat. A failed call is returned as an
// Unavailable error; a reply that cannot be decoded becomes Fallback().
func (e *Engine) Respond(ctx context.Context, state models.GameState, action string) (models.DMResponse, error) {
	prompt, err := renderTurn(state, action, e.historyWindow)
	if err != nil {
		return models.DMResponse{}, err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.DMResponse{}, errors.WrapWithCode(err, errors.CodeUnavailable, "gemini request failed")
	}

	res, err := ParseResponse(responseText(resp))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse DM response, using fallback", "error", err)
		return Fallback(), nil
	}
	return res, nil
}

// responseText joins every text part of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
