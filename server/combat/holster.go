package combat

import "errors"

// ErrEmptyHolster is returned when a holster would be created without weapons.
var ErrEmptyHolster = errors.New("holster needs at least one weapon")

// Holster holds a combatant's weapon slots in a fixed order and tracks the active one.
// The active slot is always a valid index.
type Holster struct {
	slots  []*Weapon
	active int
}

// NewHolster creates a holster with the first weapon active.
func NewHolster(weapons ...*Weapon) (*Holster, error) {
	if len(weapons) == 0 {
		return nil, ErrEmptyHolster
	}
	slots := make([]*Weapon, len(weapons))
	copy(slots, weapons)
	return &Holster{slots: slots}, nil
}

// ActiveSlot returns the index of the active weapon.
func (h *Holster) ActiveSlot() int {
	return h.active
}

// Len returns the number of slots.
func (h *Holster) Len() int {
	return len(h.slots)
}

// Slot returns the weapon in slot i, or nil when i is out of range.
func (h *Holster) Slot(i int) *Weapon {
	if i < 0 || i >= len(h.slots) {
		return nil
	}
	return h.slots[i]
}

// Active returns the active weapon for mutation during the current tick.
func (h *Holster) Active() *Weapon {
	return h.slots[h.active]
}

// Switch activates slot and returns the new weapon's name. Nothing changes
// when slot is already active or does not exist.
func (h *Holster) Switch(slot int) (name string, switched bool) {
	if slot == h.active || slot < 0 || slot >= len(h.slots) {
		return "", false
	}
	h.active = slot
	return h.slots[slot].Name, true
}

// Names lists the weapon names in slot order.
func (h *Holster) Names() []string {
	names := make([]string, len(h.slots))
	for i, w := range h.slots {
		names[i] = w.Name
	}
	return names
}
