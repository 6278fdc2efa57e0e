package combat

import (
	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
)

// ActionSet records which actions are asserted this tick.
type ActionSet [netconfig.ActionCount]bool

// Has reports whether a is asserted.
func (s ActionSet) Has(a netconfig.ActionID) bool {
	if a < 0 || a >= netconfig.ActionCount {
		return false
	}
	return s[a]
}

// Set asserts or clears a.
func (s *ActionSet) Set(a netconfig.ActionID, on bool) {
	if a < 0 || a >= netconfig.ActionCount {
		return
	}
	s[a] = on
}

// Input is the per-tick snapshot read by the shooter.
type Input struct {
	Actions ActionSet
	CursorX float64
	CursorY float64
}

// InputFromMessage converts the wire input into a snapshot. Unknown action IDs are ignored.
func InputFromMessage(msg messages.PlayerInput) Input {
	in := Input{CursorX: msg.CursorX, CursorY: msg.CursorY}
	for action, pressed := range msg.Actions {
		in.Actions.Set(action, pressed)
	}
	return in
}

// selectionOrder is the precedence for weapon selection: the first asserted entry wins.
var selectionOrder = []netconfig.ActionID{
	netconfig.ActionSelect1,
	netconfig.ActionSelect2,
	netconfig.ActionSelect3,
	netconfig.ActionSelect4,
}

// Request is what a combatant asked for this tick.
type Request struct {
	Slot      int
	HasSelect bool
	Shoot     bool
	Reload    bool
}

// Decoder maps input snapshots to combat requests.
type Decoder struct {
	slots map[netconfig.ActionID]int
}

// NewDecoder returns a decoder. SELECT4 resolves to no slot unless fourthSlot is set.
func NewDecoder(fourthSlot bool) Decoder {
	slots := map[netconfig.ActionID]int{
		netconfig.ActionSelect1: 0,
		netconfig.ActionSelect2: 1,
		netconfig.ActionSelect3: 2,
	}
	if fourthSlot {
		slots[netconfig.ActionSelect4] = 3
	}
	return Decoder{slots: slots}
}

// Decode resolves in into a request.
func (d Decoder) Decode(in Input) Request {
	req := Request{
		Shoot:  in.Actions.Has(netconfig.ActionShoot),
		Reload: in.Actions.Has(netconfig.ActionReload),
	}
	req.Slot, req.HasSelect = d.SelectedSlot(in)
	return req
}

// SelectedSlot returns the slot requested by the highest-precedence asserted
// select action. An asserted action without a slot mapping still wins
// precedence and yields no selection.
func (d Decoder) SelectedSlot(in Input) (slot int, ok bool) {
	for _, action := range selectionOrder {
		if !in.Actions.Has(action) {
			continue
		}
		slot, ok = d.slots[action]
		return slot, ok
	}
	return 0, false
}
