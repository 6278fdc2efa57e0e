package master

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestRegistry(ttl time.Duration) (*Registry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	reg := NewRegistry(ttl, zerolog.Nop())
	reg.now = clock.Now
	return reg, clock
}

func TestRegistry_RegisterAndList(t *testing.T) {
	reg, _ := newTestRegistry(time.Minute)

	idB := reg.Register(ServerInfo{Name: "bravo", Address: "b:1"})
	idA := reg.Register(ServerInfo{Name: "alpha", Address: "a:1", ID: "ignored"})
	assert.NotEqual(t, idA, idB)
	assert.NotEqual(t, "ignored", idA)

	servers := reg.List()
	require.Len(t, servers, 2)
	assert.Equal(t, "alpha", servers[0].Name)
	assert.Equal(t, idA, servers[0].ID)
	assert.Equal(t, "bravo", servers[1].Name)
}

func TestRegistry_Heartbeat(t *testing.T) {
	reg, _ := newTestRegistry(time.Minute)
	id := reg.Register(ServerInfo{Name: "alpha", Players: 1})

	assert.True(t, reg.Heartbeat(id, 7))
	assert.Equal(t, 7, reg.List()[0].Players)
	assert.False(t, reg.Heartbeat("nope", 1))
}

func TestRegistry_Expire(t *testing.T) {
	reg, clock := newTestRegistry(time.Minute)
	stale := reg.Register(ServerInfo{Name: "stale"})

	clock.now = clock.now.Add(40 * time.Second)
	fresh := reg.Register(ServerInfo{Name: "fresh"})

	clock.now = clock.now.Add(20 * time.Second)
	assert.Equal(t, 1, reg.Expire())

	servers := reg.List()
	require.Len(t, servers, 1)
	assert.Equal(t, fresh, servers[0].ID)
	assert.False(t, reg.Heartbeat(stale, 0))

	// A heartbeat keeps a server alive past its original TTL.
	clock.now = clock.now.Add(30 * time.Second)
	require.True(t, reg.Heartbeat(fresh, 0))
	clock.now = clock.now.Add(50 * time.Second)
	assert.Zero(t, reg.Expire())
}
