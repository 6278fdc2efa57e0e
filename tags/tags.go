package tags

import "github.com/yohamta/donburi"

var (
	Combatant  = donburi.NewTag().SetName("Combatant")
	Projectile = donburi.NewTag().SetName("Projectile")
	Bot        = donburi.NewTag().SetName("Bot")
)

// Resolv tags for physics collision
const (
	ResolvSolid      = "solid"
	ResolvCombatant  = "Combatant"
	ResolvProjectile = "Projectile"
)
