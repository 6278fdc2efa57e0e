package netcomponents

import "github.com/yohamta/donburi"

type NetCombatantData struct {
	X, Y         float64
	Rotation     float64 // Radians, see gamemath.Facing
	Radius       float64
	Health       int
	ActiveWeapon string
	Name         string
}

var NetCombatant = donburi.NewComponentType[NetCombatantData]()

// LerpNetCombatant interpolates position and rotation; discrete fields snap to the newer state.
func LerpNetCombatant(from, to NetCombatantData, t float64) *NetCombatantData {
	return &NetCombatantData{
		X:            from.X + (to.X-from.X)*t,
		Y:            from.Y + (to.Y-from.Y)*t,
		Rotation:     from.Rotation + (to.Rotation-from.Rotation)*t,
		Radius:       to.Radius,
		Health:       to.Health,
		ActiveWeapon: to.ActiveWeapon,
		Name:         to.Name,
	}
}
