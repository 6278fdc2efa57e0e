package replication

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddLookupRemove(t *testing.T) {
	r := NewRegistry(4)

	id, err := r.Add("10.0.0.1:5000", "alice")
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	ep, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, Endpoint("10.0.0.1:5000"), ep)

	h, ok := r.FindByEndpoint("10.0.0.1:5000")
	require.True(t, ok)
	assert.Equal(t, "alice", h.Name)
	assert.Equal(t, id, h.ID)

	assert.True(t, r.Remove(id))
	assert.False(t, r.Remove(id))
	_, ok = r.Lookup(id)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_Full(t *testing.T) {
	r := NewRegistry(1)
	_, err := r.Add("a", "one")
	require.NoError(t, err)

	_, err = r.Add("b", "two")
	assert.True(t, errors.Is(err, ErrRegistryFull))
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_DuplicateEndpoint(t *testing.T) {
	r := NewRegistry(4)
	_, err := r.Add("a", "one")
	require.NoError(t, err)

	_, err = r.Add("a", "again")
	assert.ErrorIs(t, err, ErrDuplicateEndpoint)
}

func TestRegistry_Endpoints(t *testing.T) {
	r := NewRegistry(4)
	for _, ep := range []Endpoint{"a", "b", "c"} {
		_, err := r.Add(ep, string(ep))
		require.NoError(t, err)
	}
	assert.ElementsMatch(t, []Endpoint{"a", "b", "c"}, r.Endpoints())
	assert.Contains(t, r.String(), "clients 3/4")
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	r := NewRegistry(64)
	id, err := r.Add("a", "one")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, ok := r.Lookup(id)
				assert.True(t, ok)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Add(Endpoint(rune('b'+i)), "x")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 9, r.Count())
}

func TestParseClientID(t *testing.T) {
	id := NewClientID()
	parsed, err := ParseClientID(string(id))
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseClientID("not-a-uuid")
	assert.Error(t, err)
}
