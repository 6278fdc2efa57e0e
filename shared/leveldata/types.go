// Package leveldata provides TMX arena parsing for the server.
// It has no dependencies on donburi or resolv, only plain data.
package leveldata

// ArenaData holds the collision-relevant data parsed from a TMX arena file.
type ArenaData struct {
	Solids    []SolidRect
	Spawns    []SpawnPoint
	MapWidth  int
	MapHeight int
}

// SolidRect represents a wall tile that stops projectiles.
type SolidRect struct {
	X, Y, W, H float64
}

// SpawnPoint represents a combatant spawn location.
type SpawnPoint struct {
	X, Y     float64
	Rotation float64 // Radians, converted from the "facing" property in degrees
	Index    int
}
