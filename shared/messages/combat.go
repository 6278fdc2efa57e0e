package messages

import "github.com/automoto/sixgun/shared/netconfig"

// CombatMessage is implemented by every message the combat core replicates.
type CombatMessage interface {
	Kind() netconfig.MessageKind
}

// Vec2 is a 2D quantity in world units (meters, or meters per second).
type Vec2 struct {
	X, Y float64
}

// AmmoUpdate tells the owning client how many rounds are left in the active magazine.
type AmmoUpdate struct {
	AmmoInMagazine uint32
}

// WeaponSwitch tells the owning client which weapon became active.
type WeaponSwitch struct {
	Name           string
	MagazineSize   uint32
	AmmoInMagazine uint32
}

// ShotEvent is broadcast to every client so each can render the projectile.
type ShotEvent struct {
	Position            Vec2
	Velocity            Vec2
	BulletTimeLimitSecs float64
}

func (AmmoUpdate) Kind() netconfig.MessageKind { return netconfig.KindAmmoUpdate }
func (WeaponSwitch) Kind() netconfig.MessageKind { return netconfig.KindWeaponSwitch }
func (ShotEvent) Kind() netconfig.MessageKind { return netconfig.KindShotEvent }

// Envelope is the unit handed to the transport. Payload holds the codec
// output for one CombatMessage; Seq increases per (client, stream).
type Envelope struct {
	Kind     netconfig.MessageKind
	Stream   netconfig.StreamID
	Delivery netconfig.DeliveryClass
	Seq      uint32
	Payload  []byte
}
