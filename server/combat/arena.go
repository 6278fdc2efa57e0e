package combat

import "github.com/automoto/sixgun/server/replication"

// CombatantID identifies a combatant record inside an Arena.
type CombatantID uint32

// Transform is a combatant's position and rotation in world units.
type Transform struct {
	X, Y     float64
	Rotation float64 // Radians, see gamemath.Facing
}

// BoundingCircle is the optional collision radius of a combatant.
type BoundingCircle struct {
	Radius float64
}

// Combatant is one entity the shooter processes each tick. Its holster is
// owned by this record and mutated only while this record is processed.
type Combatant struct {
	ID        CombatantID
	Name      string
	Input     Input
	Transform Transform
	Bound     *BoundingCircle
	Holster   *Holster
	Client    replication.ClientID // Zero for bots, which never receive messages
	Health    int
}

// HasClient reports whether a network client controls this combatant.
func (c *Combatant) HasClient() bool {
	return !c.Client.IsZero()
}

// Radius returns the bounding radius, or zero when the combatant has none.
func (c *Combatant) Radius() float64 {
	if c.Bound == nil {
		return 0
	}
	return c.Bound.Radius
}

// Arena stores combatant records contiguously for a single pass per tick.
type Arena struct {
	combatants []*Combatant
	index      map[CombatantID]int
	nextID     CombatantID
}

func NewArena() *Arena {
	return &Arena{
		index: make(map[CombatantID]int),
	}
}

// Add stores c, assigns it a fresh ID and returns that ID.
func (a *Arena) Add(c *Combatant) CombatantID {
	a.nextID++
	c.ID = a.nextID
	a.index[c.ID] = len(a.combatants)
	a.combatants = append(a.combatants, c)
	return c.ID
}

// Remove deletes the combatant with id. Order of the remaining records is not preserved.
func (a *Arena) Remove(id CombatantID) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	last := len(a.combatants) - 1
	if i != last {
		moved := a.combatants[last]
		a.combatants[i] = moved
		a.index[moved.ID] = i
	}
	a.combatants[last] = nil
	a.combatants = a.combatants[:last]
	delete(a.index, id)
	return true
}

// Get returns the combatant with id.
func (a *Arena) Get(id CombatantID) (*Combatant, bool) {
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return a.combatants[i], true
}

// FindByClient returns the combatant controlled by client.
func (a *Arena) FindByClient(client replication.ClientID) (*Combatant, bool) {
	if client.IsZero() {
		return nil, false
	}
	for _, c := range a.combatants {
		if c.Client == client {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of combatants.
func (a *Arena) Len() int {
	return len(a.combatants)
}

// Each calls fn for every combatant. fn must not add or remove combatants.
func (a *Arena) Each(fn func(c *Combatant)) {
	for _, c := range a.combatants {
		fn(c)
	}
}
