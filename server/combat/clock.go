package combat

import "time"

// Clock is the time of the tick being processed. It is passed into every
// operation that reads time; nothing in this package reads the wall clock.
type Clock struct {
	Tick uint64
	Now  time.Duration // Monotonic game time since the loop started
	Real time.Time
}
