package messages

import "github.com/automoto/sixgun/shared/netconfig"

// PlayerInput is sent from client to server each frame with the player's input state.
// The server keeps only the latest snapshot per combatant and reads it once per tick.
type PlayerInput struct {
	Sequence  uint32                      // Incrementing ID for reconciliation
	Actions   map[netconfig.ActionID]bool // Which actions are currently pressed
	CursorX   float64                     // Aim point in world units
	CursorY   float64
	Timestamp int64 // Client timestamp (Unix ms)
}

// NewPlayerInput creates a PlayerInput with initialized map
func NewPlayerInput(seq uint32) PlayerInput {
	return PlayerInput{
		Sequence: seq,
		Actions:  make(map[netconfig.ActionID]bool),
	}
}
