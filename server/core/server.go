package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/server/combat"
	"github.com/automoto/sixgun/server/replication"
	"github.com/automoto/sixgun/shared/gamemath"
	"github.com/automoto/sixgun/shared/messages"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// JoinRejection is the reason a join request was turned down. Its message is
// sent to the client verbatim.
type JoinRejection struct {
	Reason string
}

func (e *JoinRejection) Error() string {
	return e.Reason
}

// Server manages the game state and client connections. Network callbacks
// only queue commands; all game state is touched by the game loop goroutine.
type Server struct {
	cfg    config.Config
	logger zerolog.Logger

	world donburi.World
	level *ServerLevel
	loop  *GameLoop
	ws    *transports.WsServerTransport

	registry   *replication.Registry
	dispatcher *replication.Dispatcher
	transport  *NecsTransport
	loadout    *Loadout

	arena   *combat.Arena
	shooter *combat.Shooter
	spawns  *combat.SpawnQueue
	metrics serverMetrics

	bodies      map[combat.CombatantID]*body
	projectiles map[donburi.Entity]*ProjectilePhysics
	nextSpawn   int

	mu       sync.Mutex
	commands []func()
	inputs   map[replication.ClientID]messages.PlayerInput
}

// NewServer builds the world, loads the arena and spawns the configured bots.
func NewServer(cfg config.Config, logger zerolog.Logger) (*Server, error) {
	loadout, err := NewLoadout(cfg.Weapons, cfg.Combat.Loadout)
	if err != nil {
		return nil, err
	}

	logger = logger.With().Str("component", "server").Logger()
	world := donburi.NewWorld()
	// Set up the world for esync
	srvsync.UseEsync(world)

	registry := replication.NewRegistry(cfg.Server.MaxClients)
	dispatcher, err := replication.NewDispatcher(registry, replication.NewMsgpackCodec(), logger)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}

	spawns := combat.NewSpawnQueue()
	shooter, err := combat.NewShooter(registry, dispatcher, spawns, combat.Options{
		MaxBulletLifetime: cfg.Combat.MaxBulletLifetime,
		EnableFourthSlot:  cfg.Combat.EnableFourthSlot,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("shooter: %w", err)
	}

	m, err := newServerMetrics()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		world:       world,
		level:       loadLevelOrFallback(cfg.Level, logger),
		registry:    registry,
		dispatcher:  dispatcher,
		transport:   NewNecsTransport(),
		loadout:     loadout,
		arena:       combat.NewArena(),
		shooter:     shooter,
		spawns:      spawns,
		metrics:     m,
		bodies:      make(map[combat.CombatantID]*body),
		projectiles: make(map[donburi.Entity]*ProjectilePhysics),
		inputs:      make(map[replication.ClientID]messages.PlayerInput),
	}
	s.loop = NewGameLoop(s, cfg.Server.TickInterval(), logger)

	if err := s.spawnBots(); err != nil {
		return nil, fmt.Errorf("bots: %w", err)
	}

	logger.Info().
		Strs("loadout", loadout.Names()).
		Stringer("shooter", shooter).
		Msg("server ready")
	return s, nil
}

// Start runs the game loop and serves websocket clients until the transport
// stops. The loop stops when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.setupRouterCallbacks()
	go s.loop.Run(ctx)

	s.logger.Info().Int("port", s.cfg.Server.Port).Msg("listening")
	s.ws = transports.NewWsServerTransport(uint(s.cfg.Server.Port), "", nil)
	return s.ws.Start()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.logger.Debug().Str("endpoint", client.Id()).Msg("client connected")
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(replication.Endpoint(client.Id()), err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.onPlayerInput(replication.Endpoint(client.Id()), input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.logger.Warn().Err(err).Str("endpoint", client.Id()).Msg("client error")
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	var reply any
	accepted, err := s.admit(replication.Endpoint(client.Id()), client, req)
	if err != nil {
		reply = messages.JoinRejected{Reason: err.Error()}
	} else {
		reply = accepted
	}
	if err := client.SendMessage(reply); err != nil {
		s.logger.Warn().Err(err).Str("endpoint", client.Id()).Msg("failed to answer join request")
	}
}

// admit registers a joining client, binds its connection and queues its
// combatant for the next tick.
func (s *Server) admit(ep replication.Endpoint, conn messageSender, req messages.JoinRequest) (messages.JoinAccepted, error) {
	outcome := "accepted"
	defer func() {
		s.metrics.joins.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	if req.Version != s.cfg.Server.Version {
		outcome = "version"
		s.logger.Info().
			Str("endpoint", string(ep)).
			Str("version", req.Version).
			Msg("join rejected: version mismatch")
		return messages.JoinAccepted{}, &JoinRejection{
			Reason: fmt.Sprintf("version mismatch: server runs %s", s.cfg.Server.Version),
		}
	}

	name := req.PlayerName
	if name == "" {
		name = "player"
	}

	id, err := s.registry.Add(ep, name)
	switch {
	case errors.Is(err, replication.ErrRegistryFull):
		outcome = "full"
		return messages.JoinAccepted{}, &JoinRejection{Reason: "server full"}
	case errors.Is(err, replication.ErrDuplicateEndpoint):
		outcome = "duplicate"
		return messages.JoinAccepted{}, &JoinRejection{Reason: "already joined"}
	case err != nil:
		outcome = "error"
		return messages.JoinAccepted{}, err
	}

	s.transport.Bind(ep, conn)
	s.enqueue(func() {
		if _, err := s.spawnCombatant(name, id, nil); err != nil {
			s.logger.Error().Err(err).Str("client", string(id)).Msg("failed to spawn combatant")
		}
	})

	s.logger.Info().
		Str("client", string(id)).
		Str("endpoint", string(ep)).
		Str("name", name).
		Msg("client joined")

	return messages.JoinAccepted{
		ClientID:   string(id),
		ServerName: s.cfg.Server.Name,
		TickRate:   s.cfg.Server.TickRate,
		Loadout:    s.loadout.Names(),
	}, nil
}

func (s *Server) onDisconnect(ep replication.Endpoint, err error) {
	handle, ok := s.registry.FindByEndpoint(ep)
	if !ok {
		// Never joined.
		return
	}
	s.registry.Remove(handle.ID)
	s.transport.Unbind(ep)

	if err != nil {
		s.logger.Info().Err(err).Str("client", string(handle.ID)).Msg("client disconnected with error")
	} else {
		s.logger.Info().Str("client", string(handle.ID)).Msg("client disconnected")
	}

	s.enqueue(func() {
		s.dispatcher.Forget(ep)
		if c, ok := s.arena.FindByClient(handle.ID); ok {
			s.removeCombatant(c.ID)
		}
		s.mu.Lock()
		delete(s.inputs, handle.ID)
		s.mu.Unlock()
	})
}

// onPlayerInput keeps the newest input per client. Late packets are dropped.
func (s *Server) onPlayerInput(ep replication.Endpoint, input messages.PlayerInput) {
	handle, ok := s.registry.FindByEndpoint(ep)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.inputs[handle.ID]; ok && int32(input.Sequence-prev.Sequence) <= 0 {
		return
	}
	s.inputs[handle.ID] = input
}

func (s *Server) enqueue(cmd func()) {
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
}

// ProcessCommands runs the commands queued by network callbacks in arrival order.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// Step advances the simulation by one tick and flushes the tick's messages.
func (s *Server) Step(ctx context.Context, clock combat.Clock, dt time.Duration) {
	s.ProcessCommands()
	s.applyInputs(clock)
	s.updateMovement(dt)
	s.shooter.Run(ctx, clock, s.arena)
	s.updateProjectiles(ctx, clock, dt)
	s.commitSpawns()
	s.syncCombatants()
	s.dispatcher.Flush(ctx, s.transport)
}

// applyInputs loads each combatant's input for this tick and turns players
// toward their cursor.
func (s *Server) applyInputs(clock combat.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.arena.Each(func(c *combat.Combatant) {
		if b, ok := s.bodies[c.ID]; ok && b.bot != nil {
			b.bot.think(clock, c, s.arena)
			return
		}
		msg, ok := s.inputs[c.Client]
		if !ok {
			return
		}
		c.Input = combat.InputFromMessage(msg)
		if rot, ok := gamemath.AimRotation(c.Transform.X, c.Transform.Y, msg.CursorX, msg.CursorY); ok {
			c.Transform.Rotation = rot
		}
	})
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Level returns the loaded arena.
func (s *Server) Level() *ServerLevel {
	return s.level
}

// PlayerCount returns the number of joined clients.
func (s *Server) PlayerCount() int {
	return s.registry.Count()
}

// CombatantCount returns the number of combatants, bots included.
func (s *Server) CombatantCount() int {
	return s.arena.Len()
}
