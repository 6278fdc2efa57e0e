// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on rendering or
// ECS libraries so the dedicated server binary stays headless.
package netconfig

// ActionID represents a logical input action asserted by a client.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveForward
	ActionMoveBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionShoot
	ActionUse
	ActionRun
	ActionReload
	ActionSelect1
	ActionSelect2
	ActionSelect3
	ActionSelect4
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:         "none",
	ActionMoveForward:  "forward",
	ActionMoveBackward: "backward",
	ActionStrafeLeft:   "strafe_left",
	ActionStrafeRight:  "strafe_right",
	ActionShoot:        "shoot",
	ActionUse:          "use",
	ActionRun:          "run",
	ActionReload:       "reload",
	ActionSelect1:      "select1",
	ActionSelect2:      "select2",
	ActionSelect3:      "select3",
	ActionSelect4:      "select4",
}

func (a ActionID) String() string {
	if a >= 0 && a < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// StreamID scopes sequencing so unrelated message types never block each other.
type StreamID uint8

const (
	StreamWeaponSwitch StreamID = iota + 1
	StreamAmmoUpdate
	StreamShotEvent
)

func (s StreamID) String() string {
	switch s {
	case StreamWeaponSwitch:
		return "weapon_switch"
	case StreamAmmoUpdate:
		return "ammo_update"
	case StreamShotEvent:
		return "shot_event"
	}
	return "unknown"
}

// DeliveryClass is the reliability requirement attached to an outgoing message.
type DeliveryClass uint8

const (
	DeliveryUnreliable DeliveryClass = iota
	DeliveryReliableUnordered
	// DeliveryReliableSequenced guarantees no loss and no reordering within a
	// stream; a message older than the newest one already delivered is dropped.
	DeliveryReliableSequenced
)

func (d DeliveryClass) String() string {
	switch d {
	case DeliveryUnreliable:
		return "unreliable"
	case DeliveryReliableUnordered:
		return "reliable_unordered"
	case DeliveryReliableSequenced:
		return "reliable_sequenced"
	}
	return "unknown"
}

// MessageKind tags the concrete type carried by a replication envelope.
type MessageKind uint8

const (
	KindAmmoUpdate MessageKind = iota + 1
	KindWeaponSwitch
	KindShotEvent
)

func (k MessageKind) String() string {
	switch k {
	case KindAmmoUpdate:
		return "ammo_update"
	case KindWeaponSwitch:
		return "weapon_switch"
	case KindShotEvent:
		return "shot_event"
	}
	return "unknown"
}
