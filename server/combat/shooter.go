package combat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/automoto/sixgun/server/replication"
	"github.com/automoto/sixgun/shared/gamemath"
	"github.com/automoto/sixgun/shared/messages"
	"github.com/automoto/sixgun/shared/netconfig"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ClientDirectory resolves the owning client of a combatant to its endpoint.
type ClientDirectory interface {
	Lookup(id replication.ClientID) (replication.Endpoint, bool)
}

// Dispatcher queues combat messages for delivery.
type Dispatcher interface {
	SendTo(ep replication.Endpoint, msg messages.CombatMessage, stream netconfig.StreamID, class netconfig.DeliveryClass) error
	Broadcast(msg messages.CombatMessage, stream netconfig.StreamID, class netconfig.DeliveryClass) error
}

// Options tunes the shooter.
type Options struct {
	MaxBulletLifetime time.Duration
	EnableFourthSlot  bool
}

// Shooter runs weapon selection, firing and reloading for every combatant once per tick.
type Shooter struct {
	directory  ClientDirectory
	dispatcher Dispatcher
	spawns     *SpawnQueue
	decoder    Decoder
	opts       Options
	logger     zerolog.Logger
	metrics    shooterMetrics
}

func NewShooter(dir ClientDirectory, disp Dispatcher, spawns *SpawnQueue, opts Options, logger zerolog.Logger) (*Shooter, error) {
	if dir == nil || disp == nil || spawns == nil {
		return nil, errors.New("shooter needs a directory, a dispatcher and a spawn queue")
	}
	m, err := newShooterMetrics()
	if err != nil {
		return nil, err
	}
	return &Shooter{
		directory:  dir,
		dispatcher: disp,
		spawns:     spawns,
		decoder:    NewDecoder(opts.EnableFourthSlot),
		opts:       opts,
		logger:     logger.With().Str("component", "shooter").Logger(),
		metrics:    m,
	}, nil
}

// Run processes every combatant in the arena for the tick described by clock.
// Failures to reach a client are logged and never stop the pass.
func (s *Shooter) Run(ctx context.Context, clock Clock, arena *Arena) {
	arena.Each(func(c *Combatant) {
		s.process(ctx, clock, c)
	})
}

func (s *Shooter) process(ctx context.Context, clock Clock, c *Combatant) {
	if c.Holster == nil {
		return
	}
	req := s.decoder.Decode(c.Input)

	if req.HasSelect {
		s.selectWeapon(ctx, clock, c, req.Slot)
	}

	w := c.Holster.Active()
	if req.Shoot {
		if w.IsAllowedToShoot(clock.Now) {
			s.shoot(ctx, clock, c, w)
		}
	} else {
		w.LiftTrigger()
	}

	if req.Reload && w.IsAllowedToReload() {
		w.StartReload(clock.Now)
		s.logger.Debug().Str("combatant", c.Name).Str("weapon", w.Name).Msg("reload started")
	}

	if w.ReloadDue(clock.Now) {
		w.FinishReload()
		s.metrics.reloads.Add(ctx, 1, metric.WithAttributes(attribute.String("weapon", w.Name)))
		s.sendToOwner(c, messages.AmmoUpdate{AmmoInMagazine: uint32(w.Ammo())}, netconfig.StreamAmmoUpdate)
	}
}

func (s *Shooter) selectWeapon(ctx context.Context, clock Clock, c *Combatant, slot int) {
	name, switched := c.Holster.Switch(slot)
	if !switched {
		return
	}
	w := c.Holster.Active()
	// Switching away and back must not shorten a reload.
	w.RebaseReload(clock.Now)

	s.metrics.switches.Add(ctx, 1, metric.WithAttributes(attribute.String("weapon", name)))
	s.sendToOwner(c, messages.WeaponSwitch{
		Name:           name,
		MagazineSize:   uint32(w.Details.MagazineSize),
		AmmoInMagazine: uint32(w.Ammo()),
	}, netconfig.StreamWeaponSwitch)
}

func (s *Shooter) shoot(ctx context.Context, clock Clock, c *Combatant, w *Weapon) {
	lifetime := w.BulletLifetime(s.opts.MaxBulletLifetime)
	rotations := gamemath.PelletRotations(c.Transform.Rotation, w.Details.Spread, w.Details.PelletCount())

	events := make([]messages.ShotEvent, 0, len(rotations))
	for _, rot := range rotations {
		dirX, dirY := gamemath.Facing(rot)
		x, y := gamemath.MuzzlePosition(c.Transform.X, c.Transform.Y, dirX, dirY, c.Radius())
		velX, velY := gamemath.ProjectileVelocity(dirX, dirY, w.Details.BulletSpeed)

		s.spawns.Push(ProjectileSpawn{
			Shooter:   c.ID,
			Owner:     c.Client,
			X:         x,
			Y:         y,
			VelX:      velX,
			VelY:      velY,
			Lifetime:  lifetime,
			Damage:    w.Details.Damage,
			SpawnedAt: clock.Now,
		})
		events = append(events, messages.ShotEvent{
			Position:            messages.Vec2{X: x, Y: y},
			Velocity:            messages.Vec2{X: velX, Y: velY},
			BulletTimeLimitSecs: lifetime.Seconds(),
		})
	}

	if w.consumeRound(clock.Now) {
		s.logger.Debug().Str("combatant", c.Name).Str("weapon", w.Name).Msg("magazine empty, reloading")
	}
	s.metrics.shots.Add(ctx, int64(len(events)), metric.WithAttributes(attribute.String("weapon", w.Name)))

	s.sendToOwner(c, messages.AmmoUpdate{AmmoInMagazine: uint32(w.Ammo())}, netconfig.StreamAmmoUpdate)
	for _, ev := range events {
		if err := s.dispatcher.Broadcast(ev, netconfig.StreamShotEvent, netconfig.DeliveryReliableSequenced); err != nil {
			s.logger.Warn().Err(err).Str("combatant", c.Name).Msg("shot event not broadcast")
		}
	}
}

// sendToOwner delivers msg to the client controlling c. Bots have no client and get nothing.
func (s *Shooter) sendToOwner(c *Combatant, msg messages.CombatMessage, stream netconfig.StreamID) {
	if !c.HasClient() {
		return
	}
	ep, ok := s.directory.Lookup(c.Client)
	if !ok {
		err := &replication.AddressResolutionError{Client: c.Client}
		s.logger.Warn().Err(err).Str("stream", stream.String()).Msg("skipping send")
		return
	}
	if err := s.dispatcher.SendTo(ep, msg, stream, netconfig.DeliveryReliableSequenced); err != nil {
		s.logger.Warn().Err(err).
			Str("client", string(c.Client)).
			Str("stream", stream.String()).
			Msg("skipping send")
	}
}

func (s *Shooter) String() string {
	limit := "none"
	if s.opts.MaxBulletLifetime > 0 {
		limit = s.opts.MaxBulletLifetime.String()
	}
	return fmt.Sprintf("shooter(bullet limit %s, fourth slot %t)", limit, s.opts.EnableFourthSlot)
}
