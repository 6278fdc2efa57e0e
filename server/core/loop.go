package core

import (
	"context"
	"time"

	"github.com/automoto/sixgun/server/combat"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/rs/zerolog"
)

// statusInterval is how many ticks pass between "players online" log lines.
const statusInterval = 600

// stepper is the part of Server the loop drives.
type stepper interface {
	Step(ctx context.Context, clock combat.Clock, dt time.Duration)
	PlayerCount() int
}

type GameLoop struct {
	server   stepper
	interval time.Duration
	logger   zerolog.Logger
	sync     func() error

	start time.Time
	last  time.Duration
	tick  uint64
}

func NewGameLoop(server stepper, interval time.Duration, logger zerolog.Logger) *GameLoop {
	return &GameLoop{
		server:   server,
		interval: interval,
		logger:   logger.With().Str("component", "loop").Logger(),
		sync:     srvsync.DoSync,
	}
}

// Run ticks the server at a fixed interval until ctx is canceled.
func (g *GameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.start = time.Now()
	g.logger.Info().Dur("interval", g.interval).Msg("game loop started")

	for {
		select {
		case <-ctx.Done():
			g.logger.Info().Uint64("ticks", g.tick).Msg("game loop stopped")
			return
		case wall := <-ticker.C:
			// time.Since reads the monotonic clock, so wall clock jumps do not
			// shorten cooldowns or reloads.
			g.advance(ctx, wall, time.Since(g.start))
		}
	}
}

// advance runs one tick at game time now.
func (g *GameLoop) advance(ctx context.Context, wall time.Time, now time.Duration) {
	dt := now - g.last
	g.last = now
	g.tick++

	g.server.Step(ctx, combat.Clock{Tick: g.tick, Now: now, Real: wall}, dt)

	if err := g.sync(); err != nil {
		g.logger.Warn().Err(err).Msg("sync error")
	}

	if g.tick%statusInterval == 0 {
		g.logger.Info().
			Uint64("tick", g.tick).
			Int("players", g.server.PlayerCount()).
			Msg("players online")
	}
}

// Ticks returns how many ticks have run.
func (g *GameLoop) Ticks() uint64 {
	return g.tick
}
