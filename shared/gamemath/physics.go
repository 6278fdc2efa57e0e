package gamemath

import "math"

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// MoveDirection returns the unit vector for walking input relative to the
// combatant's rotation. forward and strafe are each -1, 0 or 1; positive
// strafe moves to the right of the facing direction. Diagonals are
// normalized so they are no faster than straight movement.
func MoveDirection(rotation float64, forward, strafe int) (dirX, dirY float64) {
	if forward == 0 && strafe == 0 {
		return 0, 0
	}
	fx, fy := Facing(rotation)
	// Right of facing is the facing vector turned a quarter clockwise.
	rx, ry := -fy, fx

	dirX = fx*float64(forward) + rx*float64(strafe)
	dirY = fy*float64(forward) + ry*float64(strafe)
	length := math.Hypot(dirX, dirY)
	return dirX / length, dirY / length
}

// SegmentPointDistance returns the shortest distance from point (px, py) to
// the segment from (ax, ay) to (bx, by). Fast projectiles use it so they
// cannot tunnel through a target between two ticks.
func SegmentPointDistance(ax, ay, bx, by, px, py float64) float64 {
	dx := bx - ax
	dy := by - ay
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return Distance(ax, ay, px, py)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return Distance(ax+t*dx, ay+t*dy, px, py)
}
