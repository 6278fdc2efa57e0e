package core

import (
	"math"
	"time"

	"github.com/automoto/sixgun/server/combat"
	"github.com/automoto/sixgun/shared/gamemath"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/solarlune/resolv"
)

// runMultiplier scales walking speed while Run is held.
const runMultiplier = 1.6

// updateMovement walks every combatant according to its input for dt.
func (s *Server) updateMovement(dt time.Duration) {
	secs := dt.Seconds()
	s.arena.Each(func(c *combat.Combatant) {
		b, ok := s.bodies[c.ID]
		if !ok {
			return
		}
		s.stepCombatantPhysics(c, b.object, secs)
	})
}

// moveAxes maps held actions to forward and strafe axes. Opposing keys cancel.
func moveAxes(actions combat.ActionSet) (forward, strafe int) {
	if actions.Has(netconfig.ActionMoveForward) {
		forward++
	}
	if actions.Has(netconfig.ActionMoveBackward) {
		forward--
	}
	if actions.Has(netconfig.ActionStrafeRight) {
		strafe++
	}
	if actions.Has(netconfig.ActionStrafeLeft) {
		strafe--
	}
	return forward, strafe
}

// stepCombatantPhysics moves one combatant, resolving each axis against
// solid tiles separately so it slides along walls.
func (s *Server) stepCombatantPhysics(c *combat.Combatant, obj *resolv.Object, secs float64) {
	forward, strafe := moveAxes(c.Input.Actions)
	dirX, dirY := gamemath.MoveDirection(c.Transform.Rotation, forward, strafe)
	if dirX == 0 && dirY == 0 {
		return
	}

	speed := s.cfg.Combat.MoveSpeed
	if c.Input.Actions.Has(netconfig.ActionRun) {
		speed *= runMultiplier
	}

	// --- Resolve horizontal collision ---
	dx, _, _ := s.level.Sweep(obj, dirX*speed*secs, 0)
	x, y := c.Transform.X+dx, c.Transform.Y
	s.level.MoveTo(obj, x, y)

	// --- Resolve vertical collision ---
	_, dy, _ := s.level.Sweep(obj, 0, dirY*speed*secs)
	y += dy

	// Open arenas have no walls, so keep everyone inside the bounds.
	r := c.Radius()
	x = math.Max(r, math.Min(x, s.level.Width-r))
	y = math.Max(r, math.Min(y, s.level.Height-r))
	s.level.MoveTo(obj, x, y)

	c.Transform.X, c.Transform.Y = x, y
}
