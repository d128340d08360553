// Command simulate_game plays a short game with a second Gemini model acting
// as the player. The save lives in a temporary directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/aetheria/internal/config"
	"github.com/tatianab/aetheria/internal/engine"
	"github.com/tatianab/aetheria/internal/game"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/pkg/clock"
	"github.com/tatianab/aetheria/internal/storage/filestore"
)

const maxTurns = 10

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		log.Fatal(err)
	}

	// The dungeon master
	dm, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.EngineOptions())
	if err != nil {
		log.Fatalf("Failed to create DM engine: %v", err)
	}
	defer dm.Close()

	// The player
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel("gemini-2.5-flash")

	dir, err := os.MkdirTemp("", "aetheria-sim")
	if err != nil {
		log.Fatalf("Failed to create save dir: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := filestore.New(dir, models.DefaultSaveKey)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	session, err := game.NewSession(&game.Config{DM: dm, Store: store, Clock: clock.New()})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	fmt.Println("--- Reincarnating ---")
	if err := session.Begin(ctx, "Kazuma", models.RaceHuman, models.ClassRogue); err != nil {
		log.Fatalf("Failed to begin game: %v", err)
	}
	printLast(session.Snapshot())

	for turn := 1; turn <= maxTurns; turn++ {
		snap := session.Snapshot()
		if snap.State.IsGameOver {
			fmt.Println("Game Over: the player perished.")
			break
		}

		for snap.State.Character.StatPoints > 0 {
			if err := session.Allocate(ctx, models.StatVitality); err != nil {
				break
			}
			snap = session.Snapshot()
		}

		fmt.Printf("--- Turn %d (%s) ---\n", turn, snap.State.Phase)
		action := getPlayerAction(ctx, playerModel, snap)
		fmt.Printf("Player Action: %s\n", action)

		if err := session.Act(ctx, action); err != nil {
			fmt.Printf("Error processing turn: %v\n", err)
			break
		}
		printLast(session.Snapshot())
	}
}

func printLast(snap game.Snapshot) {
	state := snap.State
	if state == nil || len(state.History) == 0 {
		return
	}
	fmt.Printf("DM: %s\n", state.History[len(state.History)-1].Content)
	c := state.Character
	fmt.Printf("Stats: Lv %d HP %d/%d MP %d/%d XP %d Gold %d Inventory=%v\n",
		c.Level, c.HP, c.MaxHP, c.MP, c.MaxMP, c.XP, c.Gold, c.Inventory)
	fmt.Printf("Choices: %s\n\n", strings.Join(snap.Choices, " | "))
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, snap game.Snapshot) string {
	state := snap.State
	var recent string
	if n := len(state.History); n > 0 {
		recent = state.History[n-1].Content
	}

	prompt := fmt.Sprintf(`You are playing a comedic isekai role-playing game as %s the %s %s.
What you remember: %s

The dungeon master just said:
%s

Suggested choices: %s

What is your next action? Pick a suggestion or improvise. Return ONLY the action string, no extra commentary.`,
		state.Character.Name,
		state.Character.Race,
		state.Character.Class,
		strings.Join(state.WorldMemory, "; "),
		recent,
		strings.Join(snap.Choices, ", "),
	)

	fallback := "look around"
	if len(snap.Choices) > 0 {
		fallback = snap.Choices[0]
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fallback
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fallback
	}
	action := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if action == "" {
		return fallback
	}
	return action
}
