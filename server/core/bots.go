package core

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/server/combat"
	"github.com/automoto/sixgun/shared/gamemath"
	"github.com/automoto/sixgun/shared/netconfig"
)

// botBrain drives a server-controlled combatant by writing its input each tick.
type botBrain struct {
	tuning config.BotDifficultyConfig
	rng    *rand.Rand
	target combat.CombatantID
	seen   int // Ticks the current target has stayed in range
}

func newBotBrain(tuning config.BotDifficultyConfig, seed uint64) *botBrain {
	return &botBrain{
		tuning: tuning,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// think replaces c's input with what the bot wants to do this tick.
func (b *botBrain) think(clock combat.Clock, c *combat.Combatant, arena *combat.Arena) {
	c.Input = combat.Input{}

	target, dist := nearestOpponent(c, arena)
	if target == nil || dist > b.tuning.AttackRange {
		b.target, b.seen = 0, 0
		return
	}
	if target.ID != b.target {
		b.target, b.seen = target.ID, 0
	}
	b.seen++

	if rot, ok := gamemath.AimRotation(c.Transform.X, c.Transform.Y, target.Transform.X, target.Transform.Y); ok {
		jitter := (b.rng.Float64()*2 - 1) * b.tuning.AimJitter * math.Pi / 180
		c.Transform.Rotation = rot + jitter
	}
	c.Input.CursorX, c.Input.CursorY = target.Transform.X, target.Transform.Y

	if dist > b.tuning.AttackRange/2 {
		c.Input.Actions.Set(netconfig.ActionMoveForward, true)
	}

	if c.Holster == nil {
		return
	}
	if c.Holster.Active().Ammo() == 0 {
		c.Input.Actions.Set(netconfig.ActionReload, true)
		return
	}
	// Alternate ticks so semi-automatic weapons see the trigger lift.
	if b.seen >= b.tuning.ReactionDelay && clock.Tick%2 == 0 {
		c.Input.Actions.Set(netconfig.ActionShoot, true)
	}
}

func nearestOpponent(c *combat.Combatant, arena *combat.Arena) (*combat.Combatant, float64) {
	var (
		nearest *combat.Combatant
		best    = math.Inf(1)
	)
	arena.Each(func(other *combat.Combatant) {
		if other.ID == c.ID {
			return
		}
		if d := gamemath.Distance(c.Transform.X, c.Transform.Y, other.Transform.X, other.Transform.Y); d < best {
			nearest, best = other, d
		}
	})
	return nearest, best
}

// spawnBots adds the configured number of bots at the configured difficulty.
func (s *Server) spawnBots() error {
	difficulty, ok := config.ParseBotDifficulty(s.cfg.Combat.BotDifficulty)
	if !ok {
		return fmt.Errorf("unknown bot difficulty %q", s.cfg.Combat.BotDifficulty)
	}
	tuning := config.Bot.Difficulties[difficulty]

	for i := range s.cfg.Combat.Bots {
		name := fmt.Sprintf("bot-%d", i+1)
		if _, err := s.spawnCombatant(name, "", newBotBrain(tuning, uint64(i+1))); err != nil {
			return err
		}
	}
	if s.cfg.Combat.Bots > 0 {
		s.logger.Info().
			Int("bots", s.cfg.Combat.Bots).
			Str("difficulty", s.cfg.Combat.BotDifficulty).
			Msg("bots spawned")
	}
	return nil
}
