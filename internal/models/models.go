package models

import (
	"strings"

	"github.com/tatianab/aetheria/internal/errors"
)

// Race is the character's ancestry.
type Race string

const (
	RaceHuman      Race = "Human"
	RaceElf        Race = "Elf"
	RaceDwarf      Race = "Dwarf"
	RaceOrc        Race = "Orc"
	RaceHalfling   Race = "Halfling"
	RaceDragonborn Race = "Dragonborn"
)

// Races lists every playable race in display order.
var Races = []Race{RaceHuman, RaceElf, RaceDwarf, RaceOrc, RaceHalfling, RaceDragonborn}

// Class is the character's calling.
type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassMage    Class = "Mage"
	ClassRogue   Class = "Rogue"
	ClassPaladin Class = "Paladin"
	ClassDruid   Class = "Druid"
	ClassWarlock Class = "Warlock"
)

// Classes lists every playable class in display order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue, ClassPaladin, ClassDruid, ClassWarlock}

// ParseRace matches s against the known races, ignoring case.
func ParseRace(s string) (Race, error) {
	for _, r := range Races {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown race %q", s)
}

// ParseClass matches s against the known classes, ignoring case.
func ParseClass(s string) (Class, error) {
	for _, c := range Classes {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown class %q", s)
}

// Stat names one of the four attributes.
type Stat string

const (
	StatStrength     Stat = "str"
	StatAgility      Stat = "agi"
	StatIntelligence Stat = "int"
	StatVitality     Stat = "vit"
)

// ParseStat accepts the short key ("str") or the full name ("strength").
func ParseStat(s string) (Stat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "str", "strength":
		return StatStrength, nil
	case "agi", "agility":
		return StatAgility, nil
	case "int", "intelligence":
		return StatIntelligence, nil
	case "vit", "vitality":
		return StatVitality, nil
	}
	return "", errors.InvalidArgumentf("unknown stat %q", s)
}

// Attributes are the four trainable character stats.
type Attributes struct {
	Str int `json:"str" yaml:"str"`
	Agi int `json:"agi" yaml:"agi"`
	Int int `json:"int" yaml:"int"`
	Vit int `json:"vit" yaml:"vit"`
}

// Character is the player's avatar.
type Character struct {
	Name       string     `json:"name" yaml:"name"`
	Race       Race       `json:"race" yaml:"race"`
	Class      Class      `json:"class" yaml:"class"`
	Level      int        `json:"level" yaml:"level"`
	HP         int        `json:"hp" yaml:"hp"`
	MaxHP      int        `json:"maxHp" yaml:"max_hp"`
	MP         int        `json:"mp" yaml:"mp"`
	MaxMP      int        `json:"maxMp" yaml:"max_mp"`
	XP         int        `json:"xp" yaml:"xp"`
	Gold       int        `json:"gold" yaml:"gold"`
	Inventory  []string   `json:"inventory" yaml:"inventory"`
	Stats      Attributes `json:"stats" yaml:"stats"`
	StatPoints int        `json:"statPoints" yaml:"stat_points"`
}

// Role tags who produced a history entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// LogEntry is a single line of the narrative history.
type LogEntry struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Phase is the coarse narrative stage. It only ever moves forward.
type Phase string

const (
	PhaseDeath Phase = "death"
	PhaseBoons Phase = "boons"
	PhaseAlive Phase = "alive"
)

// GameState is everything that defines a running game.
type GameState struct {
	Character   Character  `json:"character" yaml:"character"`
	History     []LogEntry `json:"history" yaml:"history"`
	WorldMemory []string   `json:"worldMemory" yaml:"world_memory"`
	IsGameOver  bool       `json:"isGameOver" yaml:"is_game_over"`
	Phase       Phase      `json:"isekaiPhase" yaml:"isekai_phase"`
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	out := s
	out.Character.Inventory = append([]string{}, s.Character.Inventory...)
	out.History = append([]LogEntry{}, s.History...)
	out.WorldMemory = append([]string{}, s.WorldMemory...)
	return out
}

// DMResponse is one structured reply from the dungeon master model.
type DMResponse struct {
	Narration    string   `json:"narration"`
	Choices      []string `json:"choices"`
	HPChange     int      `json:"hpChange"`
	MPChange     int      `json:"mpChange"`
	XPGain       int      `json:"xpGain"`
	GoldGain     int      `json:"goldGain"`
	NewItem      string   `json:"newItem,omitempty"`
	UpdateMemory string   `json:"updateMemory,omitempty"`
}

const (
	startingHP    = 100
	startingMP    = 50
	startingStat  = 10
	openingMemory = "Died tragically but ridiculously on Earth. Soullessly adrift in the Void."
)

// NewGameState builds a fresh level 1 character standing at the start of
// the death phase.
func NewGameState(name string, race Race, class Class) (GameState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GameState{}, errors.InvalidArgument("character name is required")
	}
	race, err := ParseRace(string(race))
	if err != nil {
		return GameState{}, err
	}
	class, err = ParseClass(string(class))
	if err != nil {
		return GameState{}, err
	}

	return GameState{
		Character: Character{
			Name:      name,
			Race:      race,
			Class:     class,
			Level:     1,
			HP:        startingHP,
			MaxHP:     startingHP,
			MP:        startingMP,
			MaxMP:     startingMP,
			Inventory: []string{},
			Stats: Attributes{
				Str: startingStat,
				Agi: startingStat,
				Int: startingStat,
				Vit: startingStat,
			},
		},
		History:     []LogEntry{},
		WorldMemory: []string{openingMemory},
		Phase:       PhaseDeath,
	}, nil
}
