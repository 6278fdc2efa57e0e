package core

import (
	"context"
	"math"
	"time"

	"github.com/automoto/sixgun/server/combat"
	"github.com/automoto/sixgun/server/replication"
	"github.com/automoto/sixgun/shared/gamemath"
	"github.com/automoto/sixgun/shared/netcomponents"
	"github.com/automoto/sixgun/tags"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// projectileSize is the edge of a projectile's collision square in world units.
const projectileSize = 0.1

// ProjectilePhysics holds server-side state for a projectile entity.
type ProjectilePhysics struct {
	Object     *resolv.Object
	X, Y       float64 // World units; Object mirrors them in space pixels
	Shooter    combat.CombatantID
	Owner      replication.ClientID
	VelX, VelY float64
	Damage     int
	Lifetime   time.Duration
	SpawnedAt  time.Duration
	Destroy    bool // Flagged for deferred removal
}

func newProjectilePhysics(level *ServerLevel, sp combat.ProjectileSpawn) *ProjectilePhysics {
	return &ProjectilePhysics{
		Object:    level.AddBox(sp.X, sp.Y, projectileSize, projectileSize, tags.ResolvProjectile),
		X:         sp.X,
		Y:         sp.Y,
		Shooter:   sp.Shooter,
		Owner:     sp.Owner,
		VelX:      sp.VelX,
		VelY:      sp.VelY,
		Damage:    sp.Damage,
		Lifetime:  sp.Lifetime,
		SpawnedAt: sp.SpawnedAt,
	}
}

// commitSpawns turns the shooter's spawn requests into synced entities.
// Projectiles spawned this tick first move on the next one.
func (s *Server) commitSpawns() {
	for _, sp := range s.spawns.Drain() {
		s.spawnProjectile(sp)
	}
}

func (s *Server) spawnProjectile(sp combat.ProjectileSpawn) {
	entity := s.world.Create(tags.Projectile, netcomponents.NetProjectile)
	netcomponents.NetProjectile.Set(s.world.Entry(entity), &netcomponents.NetProjectileData{
		X:             sp.X,
		Y:             sp.Y,
		VelX:          sp.VelX,
		VelY:          sp.VelY,
		OwnerClientID: string(sp.Owner),
		Damage:        sp.Damage,
		LifetimeSecs:  sp.Lifetime.Seconds(),
	})

	if err := srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(netcomponents.NetProjectile)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to sync projectile")
		s.world.Remove(entity)
		return
	}
	s.projectiles[entity] = newProjectilePhysics(s.level, sp)
}

// updateProjectiles advances every live projectile by dt, applies hits and
// removes projectiles that hit something or outlived their range.
func (s *Server) updateProjectiles(ctx context.Context, clock combat.Clock, dt time.Duration) {
	for entity, pp := range s.projectiles {
		if pp.Destroy {
			continue
		}
		if !s.world.Valid(entity) {
			pp.Destroy = true
			continue
		}
		s.stepProjectile(ctx, clock, pp, dt)
	}

	// Write final positions to net components
	for entity, pp := range s.projectiles {
		if pp.Destroy || !s.world.Valid(entity) {
			continue
		}
		np := netcomponents.NetProjectile.Get(s.world.Entry(entity))
		np.X, np.Y = pp.X, pp.Y
		np.ElapsedSecs = (clock.Now - pp.SpawnedAt).Seconds()
	}

	s.destroyFlaggedProjectiles()
}

func (s *Server) stepProjectile(ctx context.Context, clock combat.Clock, pp *ProjectilePhysics, dt time.Duration) {
	// A projectile never travels past its lifetime, which keeps its range exact.
	age := max(clock.Now-dt-pp.SpawnedAt, 0)
	travel := min(dt, pp.Lifetime-age)
	if travel <= 0 {
		pp.Destroy = true
		return
	}

	secs := travel.Seconds()
	fromX, fromY := pp.X, pp.Y
	dx, dy, hitWall := s.level.Sweep(pp.Object, pp.VelX*secs, pp.VelY*secs)

	pp.X, pp.Y = fromX+dx, fromY+dy
	s.level.MoveTo(pp.Object, pp.X, pp.Y)
	toX, toY := pp.X, pp.Y

	if target := s.projectileTarget(pp, fromX, fromY, toX, toY); target != nil {
		s.damage(ctx, target, pp.Damage, s.combatantName(pp.Shooter))
		pp.Destroy = true
		return
	}

	if hitWall || !s.level.Contains(toX, toY) || age+travel >= pp.Lifetime {
		pp.Destroy = true
	}
}

// projectileTarget returns the combatant closest to the start of the path
// from (fromX, fromY) to (toX, toY) that the path passes through.
func (s *Server) projectileTarget(pp *ProjectilePhysics, fromX, fromY, toX, toY float64) *combat.Combatant {
	var (
		hit  *combat.Combatant
		best = math.Inf(1)
	)
	s.arena.Each(func(c *combat.Combatant) {
		if c.ID == pp.Shooter {
			return
		}
		reach := c.Radius() + projectileSize/2
		if gamemath.SegmentPointDistance(fromX, fromY, toX, toY, c.Transform.X, c.Transform.Y) > reach {
			return
		}
		if d := gamemath.Distance(fromX, fromY, c.Transform.X, c.Transform.Y); d < best {
			best, hit = d, c
		}
	})
	return hit
}

func (s *Server) combatantName(id combat.CombatantID) string {
	if c, ok := s.arena.Get(id); ok {
		return c.Name
	}
	return "unknown"
}

// destroyProjectile immediately cleans up a projectile entity.
func (s *Server) destroyProjectile(entity donburi.Entity) {
	if pp, ok := s.projectiles[entity]; ok {
		s.level.Space.Remove(pp.Object)
		delete(s.projectiles, entity)
	}
	if s.world.Valid(entity) {
		s.world.Remove(entity)
	}
}

func (s *Server) destroyFlaggedProjectiles() {
	for entity, pp := range s.projectiles {
		if pp.Destroy {
			s.destroyProjectile(entity)
		}
	}
}

// ProjectileCount returns the number of live projectiles.
func (s *Server) ProjectileCount() int {
	return len(s.projectiles)
}
