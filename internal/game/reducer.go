package game

import (
	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
)

const (
	// XPPerLevel is the experience needed for each level.
	XPPerLevel = 100
	// StatPointsPerLevel is awarded for every level gained.
	StatPointsPerLevel = 5
	// BoonsMemoryThreshold is the world memory length the boons phase has
	// to exceed before the character is born into the world.
	BoonsMemoryThreshold = 2

	vitalityHPBonus     = 15
	intelligenceMPBonus = 10
)

// Apply folds a dungeon master response into the state and returns the
// result. The input state is left untouched.
func Apply(prev models.GameState, res models.DMResponse) models.GameState {
	next := prev.Clone()
	c := &next.Character

	hp := c.HP + res.HPChange
	mp := c.MP + res.MPChange
	xp := max(c.XP+res.XPGain, 0)

	if xp >= XPPerLevel {
		levels := xp / XPPerLevel
		c.Level += levels
		xp %= XPPerLevel
		c.StatPoints += levels * StatPointsPerLevel
		hp = c.MaxHP
	}

	c.HP = clamp(hp, 0, c.MaxHP)
	c.MP = clamp(mp, 0, c.MaxMP)
	c.XP = xp
	c.Gold = max(c.Gold+res.GoldGain, 0)

	if res.NewItem != "" {
		c.Inventory = append(c.Inventory, res.NewItem)
	}
	if res.UpdateMemory != "" {
		next.WorldMemory = append(next.WorldMemory, res.UpdateMemory)
	}

	next.History = append(next.History, models.LogEntry{Role: models.RoleAssistant, Content: res.Narration})
	next.Phase = advancePhase(prev.Phase, len(next.WorldMemory))
	next.IsGameOver = c.HP <= 0

	return next
}

// advancePhase moves death straight to boons, and boons to alive once
// enough boons have been written into memory.
func advancePhase(phase models.Phase, memoryLen int) models.Phase {
	switch phase {
	case models.PhaseDeath:
		return models.PhaseBoons
	case models.PhaseBoons:
		if memoryLen > BoonsMemoryThreshold {
			return models.PhaseAlive
		}
		return models.PhaseBoons
	default:
		return phase
	}
}

// Allocate spends one unspent stat point on stat. Vitality and
// intelligence also grow max HP and max MP.
func Allocate(prev models.GameState, stat models.Stat) (models.GameState, error) {
	if prev.Character.StatPoints <= 0 {
		return prev, errors.FailedPrecondition("no stat points to spend")
	}

	next := prev.Clone()
	c := &next.Character

	switch stat {
	case models.StatStrength:
		c.Stats.Str++
	case models.StatAgility:
		c.Stats.Agi++
	case models.StatIntelligence:
		c.Stats.Int++
		c.MaxMP += intelligenceMPBonus
	case models.StatVitality:
		c.Stats.Vit++
		c.MaxHP += vitalityHPBonus
	default:
		return prev, errors.InvalidArgumentf("unknown stat %q", stat)
	}
	c.StatPoints--

	return next, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
