package core

import (
	"context"
	"fmt"

	"github.com/automoto/sixgun/server/combat"
	"github.com/automoto/sixgun/server/replication"
	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netcomponents"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/automoto/sixgun/tags"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// body links a combat record to its synced entity and collision object.
// It exists only on the server and is never synced.
type body struct {
	entity donburi.Entity
	object *resolv.Object
	bot    *botBrain // Nil for player-controlled combatants
}

// spawnCombatant creates the combat record, the synced entity and the
// collision object for a new combatant at the next spawn point.
func (s *Server) spawnCombatant(name string, client replication.ClientID, brain *botBrain) (*combat.Combatant, error) {
	holster, err := s.loadout.Holster()
	if err != nil {
		return nil, fmt.Errorf("holster for %s: %w", name, err)
	}

	radius := s.cfg.Combat.Radius
	c := &combat.Combatant{
		Name:    name,
		Client:  client,
		Holster: holster,
		Health:  s.cfg.Combat.SpawnHealth,
		Bound:   &combat.BoundingCircle{Radius: radius},
	}
	s.placeAtSpawn(c)

	components := []donburi.IComponentType{tags.Combatant, netcomponents.NetCombatant}
	if brain != nil {
		components = append(components, tags.Bot)
	}
	entity := s.world.Create(components...)
	netcomponents.NetCombatant.Set(s.world.Entry(entity), netCombatantData(c))

	if err := srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(netcomponents.NetCombatant)); err != nil {
		s.world.Remove(entity)
		return nil, fmt.Errorf("network sync for %s: %w", name, err)
	}

	obj := s.level.AddBox(c.Transform.X, c.Transform.Y, 2*radius, 2*radius, tags.ResolvCombatant)

	id := s.arena.Add(c)
	s.bodies[id] = &body{entity: entity, object: obj, bot: brain}
	return c, nil
}

// removeCombatant drops every trace of the combatant. Its projectiles keep flying.
func (s *Server) removeCombatant(id combat.CombatantID) {
	if b, ok := s.bodies[id]; ok {
		s.level.Space.Remove(b.object)
		if s.world.Valid(b.entity) {
			s.world.Remove(b.entity)
		}
		delete(s.bodies, id)
	}
	s.arena.Remove(id)
}

func (s *Server) placeAtSpawn(c *combat.Combatant) {
	sp := s.level.SpawnPoint(s.nextSpawn)
	s.nextSpawn++
	c.Transform = combat.Transform{X: sp.X, Y: sp.Y, Rotation: sp.Rotation}
}

// respawn restores an eliminated combatant with full health and magazines.
func (s *Server) respawn(c *combat.Combatant) {
	holster, err := s.loadout.Holster()
	if err != nil {
		// The loadout was validated at startup, so this cannot fail at runtime.
		s.logger.Error().Err(err).Str("combatant", c.Name).Msg("respawn without new holster")
	} else {
		c.Holster = holster
	}
	c.Health = s.cfg.Combat.SpawnHealth
	s.placeAtSpawn(c)

	if b, ok := s.bodies[c.ID]; ok {
		s.level.MoveTo(b.object, c.Transform.X, c.Transform.Y)
	}

	w := c.Holster.Active()
	s.sendToOwner(c, messages.WeaponSwitch{
		Name:           w.Name,
		MagazineSize:   uint32(w.Details.MagazineSize),
		AmmoInMagazine: uint32(w.Ammo()),
	}, netconfig.StreamWeaponSwitch)
}

// damage applies a hit and respawns the target when it runs out of health.
func (s *Server) damage(ctx context.Context, target *combat.Combatant, amount int, attacker string) {
	target.Health -= amount
	s.metrics.hits.Add(ctx, 1)
	if target.Health > 0 {
		return
	}

	s.metrics.eliminations.Add(ctx, 1)
	s.logger.Info().
		Str("target", target.Name).
		Str("attacker", attacker).
		Msg("combatant eliminated")
	s.respawn(target)
}

// sendToOwner queues msg for the client controlling c. Bots are skipped.
func (s *Server) sendToOwner(c *combat.Combatant, msg messages.CombatMessage, stream netconfig.StreamID) {
	if !c.HasClient() {
		return
	}
	ep, ok := s.registry.Lookup(c.Client)
	if !ok {
		err := &replication.AddressResolutionError{Client: c.Client}
		s.logger.Warn().Err(err).Str("stream", stream.String()).Msg("skipping send")
		return
	}
	if err := s.dispatcher.SendTo(ep, msg, stream, netconfig.DeliveryReliableSequenced); err != nil {
		s.logger.Warn().Err(err).Str("client", string(c.Client)).Msg("skipping send")
	}
}

// syncCombatants copies combat state into the synced components.
func (s *Server) syncCombatants() {
	s.arena.Each(func(c *combat.Combatant) {
		b, ok := s.bodies[c.ID]
		if !ok || !s.world.Valid(b.entity) {
			return
		}
		netcomponents.NetCombatant.Set(s.world.Entry(b.entity), netCombatantData(c))
	})
}

func netCombatantData(c *combat.Combatant) *netcomponents.NetCombatantData {
	data := &netcomponents.NetCombatantData{
		X:        c.Transform.X,
		Y:        c.Transform.Y,
		Rotation: c.Transform.Rotation,
		Radius:   c.Radius(),
		Health:   c.Health,
		Name:     c.Name,
	}
	if c.Holster != nil {
		data.ActiveWeapon = c.Holster.Active().Name
	}
	return data
}
