package combat

import (
	"testing"

	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/stretchr/testify/assert"
)

func inputWith(actions ...netconfig.ActionID) Input {
	var in Input
	for _, a := range actions {
		in.Actions.Set(a, true)
	}
	return in
}

func TestDecoder_SelectionPrecedence(t *testing.T) {
	d := NewDecoder(false)

	tests := []struct {
		name    string
		actions []netconfig.ActionID
		slot    int
		ok      bool
	}{
		{"none", nil, 0, false},
		{"select1", []netconfig.ActionID{netconfig.ActionSelect1}, 0, true},
		{"select3", []netconfig.ActionID{netconfig.ActionSelect3}, 2, true},
		{"select2 beats select3", []netconfig.ActionID{netconfig.ActionSelect3, netconfig.ActionSelect2}, 1, true},
		{"select1 beats all", []netconfig.ActionID{netconfig.ActionSelect4, netconfig.ActionSelect2, netconfig.ActionSelect1}, 0, true},
		{"select4 unmapped", []netconfig.ActionID{netconfig.ActionSelect4}, 0, false},
		{"select3 beats select4", []netconfig.ActionID{netconfig.ActionSelect4, netconfig.ActionSelect3}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := d.SelectedSlot(inputWith(tt.actions...))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.slot, slot)
			}
		})
	}
}

func TestDecoder_FourthSlotEnabled(t *testing.T) {
	slot, ok := NewDecoder(true).SelectedSlot(inputWith(netconfig.ActionSelect4))
	assert.True(t, ok)
	assert.Equal(t, 3, slot)
}

func TestDecoder_Decode(t *testing.T) {
	req := NewDecoder(false).Decode(inputWith(netconfig.ActionShoot, netconfig.ActionReload, netconfig.ActionSelect2))
	assert.Equal(t, Request{Slot: 1, HasSelect: true, Shoot: true, Reload: true}, req)

	req = NewDecoder(false).Decode(inputWith(netconfig.ActionMoveForward))
	assert.Equal(t, Request{}, req)
}

func TestInputFromMessage(t *testing.T) {
	msg := messages.PlayerInput{
		Actions: map[netconfig.ActionID]bool{
			netconfig.ActionShoot:   true,
			netconfig.ActionSelect1: false,
			netconfig.ActionID(99):  true,
		},
		CursorX: 4,
		CursorY: -2,
	}
	in := InputFromMessage(msg)

	assert.True(t, in.Actions.Has(netconfig.ActionShoot))
	assert.False(t, in.Actions.Has(netconfig.ActionSelect1))
	assert.False(t, in.Actions.Has(netconfig.ActionID(99)))
	assert.Equal(t, 4.0, in.CursorX)
	assert.Equal(t, -2.0, in.CursorY)
}
