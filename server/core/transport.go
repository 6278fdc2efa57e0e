package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/automoto/sixgun/server/replication"
	"github.com/automoto/sixgun/shared/messages"
)

// messageSender is the part of *router.NetworkClient the transport needs.
type messageSender interface {
	SendMessage(msg any) error
}

// NecsTransport delivers combat envelopes over the necs websocket clients of
// joined players. Endpoints are necs client IDs.
type NecsTransport struct {
	mu      sync.RWMutex
	clients map[replication.Endpoint]messageSender
}

func NewNecsTransport() *NecsTransport {
	return &NecsTransport{
		clients: make(map[replication.Endpoint]messageSender),
	}
}

// Bind attaches a connection to an endpoint, replacing any previous one.
func (t *NecsTransport) Bind(ep replication.Endpoint, client messageSender) {
	t.mu.Lock()
	t.clients[ep] = client
	t.mu.Unlock()
}

// Unbind detaches the endpoint. Later sends report replication.ErrEndpointGone.
func (t *NecsTransport) Unbind(ep replication.Endpoint) {
	t.mu.Lock()
	delete(t.clients, ep)
	t.mu.Unlock()
}

// Len returns the number of bound endpoints.
func (t *NecsTransport) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.clients)
}

// Send writes one envelope to the endpoint's connection.
func (t *NecsTransport) Send(ctx context.Context, ep replication.Endpoint, env messages.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.RLock()
	client, ok := t.clients[ep]
	t.mu.RUnlock()
	if !ok {
		return replication.ErrEndpointGone
	}

	if err := client.SendMessage(env); err != nil {
		return fmt.Errorf("send %s to %s: %w", env.Kind, ep, err)
	}
	return nil
}
