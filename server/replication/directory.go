package replication

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrRegistryFull      = errors.New("client registry is full")
	ErrDuplicateEndpoint = errors.New("endpoint already registered")
)

// ClientID is the stable identity of a connected client.
type ClientID string

// NewClientID returns a fresh random identity.
func NewClientID() ClientID {
	return ClientID(uuid.NewString())
}

// ParseClientID validates s as a client identity.
func ParseClientID(s string) (ClientID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse client id: %w", err)
	}
	return ClientID(u.String()), nil
}

// IsZero reports whether id is unset.
func (id ClientID) IsZero() bool {
	return id == ""
}

// Endpoint is the current network address of a client as known to the transport.
type Endpoint string

// Directory resolves client identities to endpoints.
type Directory interface {
	Lookup(id ClientID) (Endpoint, bool)
	Endpoints() []Endpoint
}

// ClientHandle is one registry entry.
type ClientHandle struct {
	ID       ClientID
	Endpoint Endpoint
	Name     string
}

// Registry is the in-memory client directory. Lookups take a read lock so the
// tick can resolve addresses while connection callbacks register clients.
type Registry struct {
	mu       sync.RWMutex
	capacity int
	clients  map[ClientID]ClientHandle
}

var _ Directory = (*Registry)(nil)

// NewRegistry creates a registry that accepts at most capacity clients.
func NewRegistry(capacity int) *Registry {
	return &Registry{
		capacity: capacity,
		clients:  make(map[ClientID]ClientHandle, capacity),
	}
}

// Add registers a client reachable at ep and returns its new identity.
func (r *Registry) Add(ep Endpoint, name string) (ClientID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.clients) >= r.capacity {
		return "", fmt.Errorf("add %q: %w (capacity %d)", name, ErrRegistryFull, r.capacity)
	}
	for _, h := range r.clients {
		if h.Endpoint == ep {
			return "", fmt.Errorf("add %q at %s: %w", name, ep, ErrDuplicateEndpoint)
		}
	}

	id := NewClientID()
	r.clients[id] = ClientHandle{ID: id, Endpoint: ep, Name: name}
	return id, nil
}

// Remove unregisters id and reports whether it was present.
func (r *Registry) Remove(id ClientID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return false
	}
	delete(r.clients, id)
	return true
}

// Lookup returns the endpoint of id.
func (r *Registry) Lookup(id ClientID) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.clients[id]
	return h.Endpoint, ok
}

// Endpoints returns every registered endpoint in no particular order.
func (r *Registry) Endpoints() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Endpoint, 0, len(r.clients))
	for _, h := range r.clients {
		out = append(out, h.Endpoint)
	}
	return out
}

// Find returns the full entry for id.
func (r *Registry) Find(id ClientID) (ClientHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.clients[id]
	return h, ok
}

// FindByEndpoint returns the entry registered at ep.
func (r *Registry) FindByEndpoint(ep Endpoint) (ClientHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.clients {
		if h.Endpoint == ep {
			return h, true
		}
	}
	return ClientHandle{}, false
}

// Count returns the number of registered clients.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Registry) String() string {
	r.mu.RLock()
	handles := make([]ClientHandle, 0, len(r.clients))
	for _, h := range r.clients {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool { return handles[i].Name < handles[j].Name })

	var b strings.Builder
	fmt.Fprintf(&b, "clients %d/%d", len(handles), r.capacity)
	for _, h := range handles {
		fmt.Fprintf(&b, "\n  %s %s (%s)", h.ID, h.Name, h.Endpoint)
	}
	return b.String()
}
