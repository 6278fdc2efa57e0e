package gamemath

import (
	"math"
	"time"
)

// Facing returns the unit vector a combatant fires along for the given
// rotation (radians, counter-clockwise). At rotation 0 the sprite's +Y axis
// points away from the muzzle, so shots travel along -Y.
func Facing(rotation float64) (dirX, dirY float64) {
	return math.Sin(rotation), -math.Cos(rotation)
}

// AimRotation returns the rotation whose Facing points from (fromX, fromY)
// toward (toX, toY). ok is false when the two points coincide.
func AimRotation(fromX, fromY, toX, toY float64) (rotation float64, ok bool) {
	dx := toX - fromX
	dy := toY - fromY
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return math.Atan2(dx, -dy), true
}

// MuzzlePosition offsets the combatant center along the facing direction by
// its bounding radius so projectiles start at the body edge.
func MuzzlePosition(x, y, dirX, dirY, radius float64) (muzzleX, muzzleY float64) {
	return x + dirX*radius, y + dirY*radius
}

// ProjectileVelocity scales a unit direction by muzzle velocity.
func ProjectileVelocity(dirX, dirY, speed float64) (velX, velY float64) {
	return dirX * speed, dirY * speed
}

// BulletLifetime returns how long a projectile lives before it has covered
// maxDistance, capped at limit. A non-positive limit means no cap.
func BulletLifetime(maxDistance, speed float64, limit time.Duration) time.Duration {
	if speed <= 0 || maxDistance <= 0 {
		return 0
	}
	lifetime := time.Duration(maxDistance / speed * float64(time.Second))
	if limit > 0 && lifetime > limit {
		return limit
	}
	return lifetime
}

// PelletRotations fans pellets evenly across spread (degrees) centered on
// rotation. A single pellet always flies straight.
func PelletRotations(rotation, spreadDeg float64, pellets int) []float64 {
	if pellets <= 1 || spreadDeg == 0 {
		n := max(pellets, 1)
		out := make([]float64, n)
		for i := range out {
			out[i] = rotation
		}
		return out
	}

	spread := spreadDeg * math.Pi / 180
	step := spread / float64(pellets-1)
	start := rotation - spread/2

	out := make([]float64, pellets)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Distance returns the euclidean distance between two points.
func Distance(ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	return math.Sqrt(dx*dx + dy*dy)
}
