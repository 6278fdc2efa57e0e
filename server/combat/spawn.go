package combat

import (
	"time"

	"github.com/automoto/sixgun/server/replication"
)

// ProjectileSpawn is a request to create a projectile entity once the tick ends.
type ProjectileSpawn struct {
	Shooter   CombatantID
	Owner     replication.ClientID
	X, Y      float64
	VelX      float64
	VelY      float64
	Lifetime  time.Duration
	Damage    int
	SpawnedAt time.Duration
}

// SpawnQueue collects projectile spawns during a tick. The host drains it
// after the tick and commits the entities.
type SpawnQueue struct {
	pending []ProjectileSpawn
}

func NewSpawnQueue() *SpawnQueue {
	return &SpawnQueue{}
}

// Push appends a spawn request.
func (q *SpawnQueue) Push(s ProjectileSpawn) {
	q.pending = append(q.pending, s)
}

// Len returns the number of pending requests.
func (q *SpawnQueue) Len() int {
	return len(q.pending)
}

// Drain returns all pending requests in push order and empties the queue.
func (q *SpawnQueue) Drain() []ProjectileSpawn {
	out := q.pending
	q.pending = nil
	return out
}
