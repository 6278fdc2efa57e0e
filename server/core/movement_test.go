package core

import (
	"testing"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/server/combat"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/stretchr/testify/assert"
)

func TestMoveAxes(t *testing.T) {
	var actions combat.ActionSet
	actions.Set(netconfig.ActionMoveForward, true)
	actions.Set(netconfig.ActionStrafeLeft, true)
	forward, strafe := moveAxes(actions)
	assert.Equal(t, 1, forward)
	assert.Equal(t, -1, strafe)

	actions.Set(netconfig.ActionMoveBackward, true)
	forward, _ = moveAxes(actions)
	assert.Zero(t, forward, "opposing keys cancel")
}

func TestMovement_RunStrafe(t *testing.T) {
	h := newHarness(t, nil)
	alice, _ := h.join("alice")
	h.place(alice, 5, 10)

	h.input(alice, 5, 0, netconfig.ActionStrafeRight, netconfig.ActionRun)
	h.steps(60)

	assert.InDelta(t, 5+3*runMultiplier, alice.Transform.X, 1e-6)
	assert.InDelta(t, 10.0, alice.Transform.Y, 1e-9)
}

func TestMovement_ClampedToOpenArena(t *testing.T) {
	h := newHarness(t, nil)
	alice, _ := h.join("alice")
	h.place(alice, 10, 2)

	h.input(alice, 10, 0, netconfig.ActionMoveForward)
	h.steps(60)

	assert.InDelta(t, 0.5, alice.Transform.Y, 1e-9)
}

func TestMovement_StopsAtWall(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Level.Dir = "" })
	alice, _ := h.join("alice")
	// Below the crate at tiles (11..12, 3).
	h.place(alice, 12, 6)

	h.input(alice, 12, 0, netconfig.ActionMoveForward)
	h.steps(120)

	assert.InDelta(t, 12.0, alice.Transform.X, 1e-9)
	assert.InDelta(t, 4.5, alice.Transform.Y, 0.01)
}
