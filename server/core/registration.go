package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/master"
	"github.com/rs/zerolog"
)

// PlayerCounter reports how many players are connected.
type PlayerCounter interface {
	PlayerCount() int
}

// Registration handles registering and heartbeating with the master server.
type Registration struct {
	master  config.MasterConfig
	server  config.ServerConfig
	players PlayerCounter
	client  *http.Client
	logger  zerolog.Logger

	mu       sync.Mutex
	serverID string
}

func NewRegistration(mc config.MasterConfig, sc config.ServerConfig, players PlayerCounter, logger zerolog.Logger) *Registration {
	return &Registration{
		master:  mc,
		server:  sc,
		players: players,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger.With().Str("component", "registration").Logger(),
	}
}

// Run registers once and then heartbeats every master.interval until ctx is canceled.
func (r *Registration) Run(ctx context.Context) {
	if err := r.register(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("initial registration failed")
	}

	interval := r.master.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(ctx); err != nil {
				r.logger.Warn().Err(err).Msg("heartbeat failed")
			}
		}
	}
}

// ServerID returns the ID assigned by the master, or "" before registration.
func (r *Registration) ServerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serverID
}

func (r *Registration) register(ctx context.Context) error {
	resp, err := r.post(ctx, master.PathRegister, master.RegisterRequest{
		Name:       r.server.Name,
		Address:    r.master.Address,
		Players:    r.players.PlayerCount(),
		MaxPlayers: r.server.MaxClients,
		Version:    r.server.Version,
		Region:     r.master.Region,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result master.RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.mu.Lock()
	r.serverID = result.ID
	r.mu.Unlock()
	r.logger.Info().Str("id", result.ID).Msg("registered with master")
	return nil
}

func (r *Registration) sendHeartbeat(ctx context.Context) error {
	id := r.ServerID()
	if id == "" {
		return r.register(ctx)
	}

	resp, err := r.post(ctx, master.PathHeartbeat, master.HeartbeatRequest{
		ID:      id,
		Players: r.players.PlayerCount(),
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		r.logger.Info().Msg("master lost our registration, re-registering")
		return r.register(ctx)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}

func (r *Registration) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.master.URL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}
	return resp, nil
}
