package netcomponents

import "github.com/yohamta/donburi"

type NetProjectileData struct {
	X, Y          float64
	VelX, VelY    float64 // Client extrapolation between snapshots
	OwnerClientID string  // Empty for projectiles fired by bots
	Damage        int
	LifetimeSecs  float64
	ElapsedSecs   float64
}

var NetProjectile = donburi.NewComponentType[NetProjectileData]()

// LerpNetProjectile interpolates between two projectile states
func LerpNetProjectile(from, to NetProjectileData, t float64) *NetProjectileData {
	return &NetProjectileData{
		X:             from.X + (to.X-from.X)*t,
		Y:             from.Y + (to.Y-from.Y)*t,
		VelX:          to.VelX,
		VelY:          to.VelY,
		OwnerClientID: to.OwnerClientID,
		Damage:        to.Damage,
		LifetimeSecs:  to.LifetimeSecs,
		ElapsedSecs:   from.ElapsedSecs + (to.ElapsedSecs-from.ElapsedSecs)*t,
	}
}
